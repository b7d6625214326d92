package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

var _ repository.CompanyProfileRepository = (*CompanyProfileRepo)(nil)

// CompanyProfileRepo implementación de CompanyProfileRepository.
type CompanyProfileRepo struct {
	q Querier
}

// NewCompanyProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyProfileRepository(q Querier) *CompanyProfileRepo {
	return &CompanyProfileRepo{q: q}
}

const profileColumns = `
	id, user_id, name, email, phone, address, website, representative,
	is_default, created_at, updated_at`

// Create persiste un perfil de empresa.
func (r *CompanyProfileRepo) Create(profile *entity.CompanyProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	query := `
		INSERT INTO company_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		profile.ID, profile.UserID, profile.Name, profile.Email, profile.Phone, profile.Address,
		nullIfEmpty(profile.Website), nullIfEmpty(profile.Representative),
		profile.IsDefault, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *CompanyProfileRepo) GetByID(id string) (*entity.CompanyProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM company_profiles WHERE id = $1`
	p, err := scanProfile(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get company profile: %w", err)
	}
	return p, nil
}

// GetDefaultByUser devuelve el perfil predeterminado del usuario (nil si no tiene).
func (r *CompanyProfileRepo) GetDefaultByUser(userID string) (*entity.CompanyProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM company_profiles WHERE user_id = $1 AND is_default`
	p, err := scanProfile(r.q.QueryRow(context.Background(), query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default company profile: %w", err)
	}
	return p, nil
}

// ListByUser devuelve los perfiles del usuario, el predeterminado primero.
func (r *CompanyProfileRepo) ListByUser(userID string) ([]*entity.CompanyProfile, error) {
	query := `SELECT ` + profileColumns + `
		FROM company_profiles
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("query company profiles: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company profile: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza el perfil completo.
func (r *CompanyProfileRepo) Update(profile *entity.CompanyProfile) error {
	profile.UpdatedAt = time.Now()
	query := `
		UPDATE company_profiles
		SET name = $2, email = $3, phone = $4, address = $5,
		    website = $6, representative = $7, is_default = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		profile.ID, profile.Name, profile.Email, profile.Phone, profile.Address,
		nullIfEmpty(profile.Website), nullIfEmpty(profile.Representative),
		profile.IsDefault, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearDefault desmarca el predeterminado actual del usuario.
func (r *CompanyProfileRepo) ClearDefault(userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE company_profiles SET is_default = FALSE, updated_at = $2 WHERE user_id = $1 AND is_default`,
		userID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("clear default profile: %w", err)
	}
	return nil
}

// Delete elimina un perfil de empresa.
func (r *CompanyProfileRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM company_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProfile(row scanTarget) (*entity.CompanyProfile, error) {
	var p entity.CompanyProfile
	var website, representative *string
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.Address,
		&website, &representative, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Website = derefStr(website)
	p.Representative = derefStr(representative)
	return &p, nil
}
