package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/application/usecase"
)

// CompanyHandler maneja los perfiles de empresa emisora (protegido).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create da de alta un perfil de empresa.
// POST /api/company-profiles
// @Summary Crear perfil de empresa
// @Tags company
// @Accept json
// @Produce json
// @Success 201 {object} dto.CompanyProfileResponse
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.CompanyProfileRequest
	if !validateBody(c, &in) {
		return nil
	}
	resp, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista los perfiles del usuario (predeterminado primero).
// GET /api/company-profiles
// @Summary Listar perfiles de empresa
// @Tags company
// @Produce json
// @Success 200 {array} dto.CompanyProfileResponse
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	resp, err := h.uc.List(userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// GetDefault devuelve el perfil predeterminado.
// GET /api/company-profiles/default
// @Summary Perfil de empresa predeterminado
// @Tags company
// @Produce json
// @Success 200 {object} dto.CompanyProfileResponse
func (h *CompanyHandler) GetDefault(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	resp, err := h.uc.GetDefault(userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Update edita un perfil (marcarlo predeterminado desmarca el anterior).
// PUT /api/company-profiles/:id
// @Summary Editar perfil de empresa
// @Tags company
// @Accept json
// @Produce json
// @Success 200 {object} dto.CompanyProfileResponse
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.CompanyProfileRequest
	if !validateBody(c, &in) {
		return nil
	}
	resp, err := h.uc.Update(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina un perfil de empresa.
// DELETE /api/company-profiles/:id
// @Summary Eliminar perfil de empresa
// @Tags company
// @Success 204
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(userID, c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
