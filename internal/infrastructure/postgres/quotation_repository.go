package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

const quotationColumns = `
	id, user_id, quotation_number, date, valid_until,
	customer_name, customer_email, customer_phone, customer_address,
	project_name, subtotal, tax_mode, tax_name, tax_rate, tax_amount, total,
	notes, delivery_terms, template, status,
	company_name, company_email, company_phone, company_address,
	company_website, company_representative,
	created_at, updated_at`

// Create persiste la cabecera de la cotización.
func (r *QuotationRepo) Create(q *entity.Quotation) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotations (` + quotationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`
	_, err := r.q.Exec(context.Background(), query,
		q.ID, q.UserID, q.QuotationNumber, q.Date, q.ValidUntil,
		nullIfEmpty(q.Customer.Name), nullIfEmpty(q.Customer.Email),
		nullIfEmpty(q.Customer.Phone), nullIfEmpty(q.Customer.Address),
		nullIfEmpty(q.ProjectName),
		q.Subtotal, q.TaxMode, nullIfEmpty(q.TaxName), q.TaxRate, q.TaxAmount, q.Total,
		nullIfEmpty(q.Notes), nullIfEmpty(q.DeliveryTerms), q.Template, q.Status,
		q.Company.Name, q.Company.Email, q.Company.Phone, q.Company.Address,
		nullIfEmpty(q.Company.Website), nullIfEmpty(q.Company.Representative),
		q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de cotización duplicado: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la cotización.
func (r *QuotationRepo) CreateItem(item *entity.QuotationItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotation_items (id, quotation_id, position, name, description, image, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuotationID, item.Position, item.Name,
		nullIfEmpty(item.Description), nullIfEmpty(item.Image),
		item.Quantity, item.UnitPrice, item.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert quotation item: %w", err)
	}
	return nil
}

// Update actualiza la cabecera completa. El número de cotización no se toca:
// una vez asignado es inmutable.
func (r *QuotationRepo) Update(q *entity.Quotation) error {
	query := `
		UPDATE quotations
		SET date = $2, valid_until = $3,
		    customer_name = $4, customer_email = $5, customer_phone = $6, customer_address = $7,
		    project_name = $8, subtotal = $9, tax_mode = $10, tax_name = $11,
		    tax_rate = $12, tax_amount = $13, total = $14,
		    notes = $15, delivery_terms = $16, template = $17, status = $18,
		    company_name = $19, company_email = $20, company_phone = $21, company_address = $22,
		    company_website = $23, company_representative = $24,
		    updated_at = $25
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		q.ID, q.Date, q.ValidUntil,
		nullIfEmpty(q.Customer.Name), nullIfEmpty(q.Customer.Email),
		nullIfEmpty(q.Customer.Phone), nullIfEmpty(q.Customer.Address),
		nullIfEmpty(q.ProjectName),
		q.Subtotal, q.TaxMode, nullIfEmpty(q.TaxName), q.TaxRate, q.TaxAmount, q.Total,
		nullIfEmpty(q.Notes), nullIfEmpty(q.DeliveryTerms), q.Template, q.Status,
		q.Company.Name, q.Company.Email, q.Company.Phone, q.Company.Address,
		nullIfEmpty(q.Company.Website), nullIfEmpty(q.Company.Representative),
		q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceItems reemplaza el conjunto completo de líneas de la cotización.
func (r *QuotationRepo) ReplaceItems(quotationID string, items []*entity.QuotationItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, quotationID); err != nil {
		return fmt.Errorf("delete quotation items: %w", err)
	}
	for _, item := range items {
		item.QuotationID = quotationID
		if err := r.CreateItem(item); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus persiste una transición de estado.
func (r *QuotationRepo) UpdateStatus(q *entity.Quotation) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE quotations SET status = $2, updated_at = $3 WHERE id = $1`,
		q.ID, q.Status, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una cotización por ID (sin líneas).
func (r *QuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id = $1`
	q, err := scanQuotation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return q, nil
}

// GetItemsByQuotationID devuelve las líneas ordenadas por posición.
func (r *QuotationRepo) GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error) {
	query := `
		SELECT id, quotation_id, position, name, description, image, quantity, price, total
		FROM quotation_items
		WHERE quotation_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("query quotation items: %w", err)
	}
	defer rows.Close()

	var list []*entity.QuotationItem
	for rows.Next() {
		var it entity.QuotationItem
		var description, image *string
		if err := rows.Scan(
			&it.ID, &it.QuotationID, &it.Position, &it.Name,
			&description, &image, &it.Quantity, &it.UnitPrice, &it.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		it.Description = derefStr(description)
		it.Image = derefStr(image)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByUser devuelve las cotizaciones del usuario, más recientes primero.
func (r *QuotationRepo) ListByUser(userID string, limit, offset int) ([]*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + `
		FROM quotations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query quotations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Delete elimina la cotización; las líneas caen en cascada (FK ON DELETE CASCADE).
func (r *QuotationRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextSequence incrementa de forma atómica el consecutivo del usuario en el
// periodo y devuelve el nuevo valor. El upsert con incremento en una sola
// sentencia evita el read-then-increment: dos transacciones concurrentes
// reciben valores distintos garantizado por PostgreSQL.
func (r *QuotationRepo) NextSequence(userID, period string) (int, error) {
	query := `
		INSERT INTO quotation_counters (user_id, period, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, period)
		DO UPDATE SET seq = quotation_counters.seq + 1
		RETURNING seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, userID, period).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// PeekSequence devuelve el consecutivo que tocaría a continuación, sin reservarlo.
func (r *QuotationRepo) PeekSequence(userID, period string) (int, error) {
	query := `
		SELECT COALESCE(
			(SELECT seq FROM quotation_counters WHERE user_id = $1 AND period = $2), 0
		) + 1`
	var next int
	if err := r.q.QueryRow(context.Background(), query, userID, period).Scan(&next); err != nil {
		return 0, fmt.Errorf("peek sequence: %w", err)
	}
	return next, nil
}

// scanTarget interfaz mínima común de pgx.Row y pgx.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanQuotation(row scanTarget) (*entity.Quotation, error) {
	var q entity.Quotation
	var customerName, customerEmail, customerPhone, customerAddress *string
	var projectName, taxName, notes, deliveryTerms *string
	var companyWebsite, companyRepresentative *string

	err := row.Scan(
		&q.ID, &q.UserID, &q.QuotationNumber, &q.Date, &q.ValidUntil,
		&customerName, &customerEmail, &customerPhone, &customerAddress,
		&projectName, &q.Subtotal, &q.TaxMode, &taxName, &q.TaxRate, &q.TaxAmount, &q.Total,
		&notes, &deliveryTerms, &q.Template, &q.Status,
		&q.Company.Name, &q.Company.Email, &q.Company.Phone, &q.Company.Address,
		&companyWebsite, &companyRepresentative,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.Customer = entity.CustomerInfo{
		Name:    derefStr(customerName),
		Email:   derefStr(customerEmail),
		Phone:   derefStr(customerPhone),
		Address: derefStr(customerAddress),
	}
	q.ProjectName = derefStr(projectName)
	q.TaxName = derefStr(taxName)
	q.Notes = derefStr(notes)
	q.DeliveryTerms = derefStr(deliveryTerms)
	q.Company.Website = derefStr(companyWebsite)
	q.Company.Representative = derefStr(companyRepresentative)
	return &q, nil
}
