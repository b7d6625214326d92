package usecase

import (
	"context"
	"fmt"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

// ProfileTxRunner ejecuta fn con un repositorio de perfiles dentro de una
// transacción.
type ProfileTxRunner interface {
	RunCompanyProfiles(ctx context.Context, fn func(repo repository.CompanyProfileRepository) error) error
}

// CompanyUseCase administra los perfiles de empresa emisora del usuario.
// Invariante: a lo sumo un perfil predeterminado por usuario; el primer perfil
// creado se marca predeterminado automáticamente. Cambiar de predeterminado
// (liberar el anterior + escribir el nuevo) ocurre en una sola transacción.
type CompanyUseCase struct {
	txRunner ProfileTxRunner
	repo     repository.CompanyProfileRepository
}

func NewCompanyUseCase(txRunner ProfileTxRunner, repo repository.CompanyProfileRepository) *CompanyUseCase {
	return &CompanyUseCase{txRunner: txRunner, repo: repo}
}

func (uc *CompanyUseCase) Create(ctx context.Context, userID string, in dto.CompanyProfileRequest) (*dto.CompanyProfileResponse, error) {
	existing, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listando perfiles: %w", err)
	}
	isDefault := in.IsDefault || len(existing) == 0

	profile := &entity.CompanyProfile{
		UserID:         userID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		Website:        in.Website,
		Representative: in.Representative,
		IsDefault:      isDefault,
	}
	err = uc.txRunner.RunCompanyProfiles(ctx, func(repo repository.CompanyProfileRepository) error {
		if isDefault {
			if err := repo.ClearDefault(userID); err != nil {
				return fmt.Errorf("liberando predeterminado: %w", err)
			}
		}
		if err := repo.Create(profile); err != nil {
			return fmt.Errorf("creando perfil: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

func (uc *CompanyUseCase) List(userID string) ([]dto.CompanyProfileResponse, error) {
	profiles, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listando perfiles: %w", err)
	}
	out := make([]dto.CompanyProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, *toProfileResponse(p))
	}
	return out, nil
}

// GetDefault devuelve el perfil predeterminado (ErrNotFound si no hay).
func (uc *CompanyUseCase) GetDefault(userID string) (*dto.CompanyProfileResponse, error) {
	profile, err := uc.repo.GetDefaultByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("leyendo predeterminado: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return toProfileResponse(profile), nil
}

func (uc *CompanyUseCase) Update(ctx context.Context, userID, id string, in dto.CompanyProfileRequest) (*dto.CompanyProfileResponse, error) {
	profile, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	becomesDefault := in.IsDefault && !profile.IsDefault
	profile.Name = in.Name
	profile.Email = in.Email
	profile.Phone = in.Phone
	profile.Address = in.Address
	profile.Website = in.Website
	profile.Representative = in.Representative
	profile.IsDefault = in.IsDefault || profile.IsDefault

	err = uc.txRunner.RunCompanyProfiles(ctx, func(repo repository.CompanyProfileRepository) error {
		if becomesDefault {
			if err := repo.ClearDefault(userID); err != nil {
				return fmt.Errorf("liberando predeterminado: %w", err)
			}
		}
		if err := repo.Update(profile); err != nil {
			return fmt.Errorf("actualizando perfil: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

func (uc *CompanyUseCase) Delete(userID, id string) error {
	if _, err := uc.owned(userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *CompanyUseCase) owned(userID, id string) (*entity.CompanyProfile, error) {
	profile, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return profile, nil
}

func toProfileResponse(p *entity.CompanyProfile) *dto.CompanyProfileResponse {
	return &dto.CompanyProfileResponse{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		Website:        p.Website,
		Representative: p.Representative,
		IsDefault:      p.IsDefault,
	}
}
