package repository

import "github.com/spekmx/cotizador-api/internal/domain/entity"

// CompanyProfileRepository puerto de persistencia para perfiles de empresa.
type CompanyProfileRepository interface {
	Create(profile *entity.CompanyProfile) error
	GetByID(id string) (*entity.CompanyProfile, error)
	// GetDefaultByUser devuelve el perfil predeterminado del usuario
	// (nil si no tiene ninguno).
	GetDefaultByUser(userID string) (*entity.CompanyProfile, error)
	ListByUser(userID string) ([]*entity.CompanyProfile, error)
	Update(profile *entity.CompanyProfile) error
	// ClearDefault desmarca el predeterminado actual del usuario (previo a
	// marcar otro, para conservar la exclusividad).
	ClearDefault(userID string) error
	Delete(id string) error
}
