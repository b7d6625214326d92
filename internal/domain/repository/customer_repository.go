package repository

import "github.com/spekmx/cotizador-api/internal/domain/entity"

// CustomerRepository puerto de persistencia para el catálogo de clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
