package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/application/quotation"
)

// CustomerHandler maneja el catálogo de clientes (protegido).
type CustomerHandler struct {
	uc *quotation.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *quotation.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create da de alta un cliente.
// POST /api/customers
// @Summary Crear cliente
// @Tags customers
// @Accept json
// @Produce json
// @Success 201 {object} dto.CustomerResponse
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.CustomerRequest
	if !validateBody(c, &in) {
		return nil
	}
	resp, err := h.uc.Create(userID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista los clientes del usuario.
// GET /api/customers
// @Summary Listar clientes
// @Tags customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	resp, err := h.uc.List(userID, page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// GetByID obtiene un cliente.
// GET /api/customers/:id
// @Summary Obtener cliente
// @Tags customers
// @Produce json
// @Success 200 {object} dto.CustomerResponse
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	resp, err := h.uc.Get(userID, c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Update actualiza un cliente.
// PUT /api/customers/:id
// @Summary Editar cliente
// @Tags customers
// @Accept json
// @Produce json
// @Success 200 {object} dto.CustomerResponse
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.CustomerRequest
	if !validateBody(c, &in) {
		return nil
	}
	resp, err := h.uc.Update(userID, c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina un cliente.
// DELETE /api/customers/:id
// @Summary Eliminar cliente
// @Tags customers
// @Success 204
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(userID, c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
