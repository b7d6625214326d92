package quotation

import (
	"fmt"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

// CustomerUseCase catálogo de clientes del usuario, usado para autocompletar
// el bloque de cliente del formulario de cotización.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (uc *CustomerUseCase) Create(userID string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer := &entity.Customer{
		UserID:  userID,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, fmt.Errorf("creando cliente: %w", err)
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) Get(userID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) List(userID string, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	customers, err := uc.repo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listando clientes: %w", err)
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func (uc *CustomerUseCase) Update(userID, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.owned(userID, id)
	if err != nil {
		return nil, err
	}
	customer.Name = in.Name
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	if err := uc.repo.Update(customer); err != nil {
		return nil, fmt.Errorf("actualizando cliente: %w", err)
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) Delete(userID, id string) error {
	if _, err := uc.owned(userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *CustomerUseCase) owned(userID, id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}
