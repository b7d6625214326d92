package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/application/usecase"
	"github.com/spekmx/cotizador-api/internal/domain"
)

// AIHandler descripciones comerciales generadas por IA (protegido).
type AIHandler struct {
	uc      *usecase.AIUseCase
	enabled bool
}

// NewAIHandler construye el handler. enabled=false (sin API key) responde 503.
func NewAIHandler(uc *usecase.AIUseCase, enabled bool) *AIHandler {
	return &AIHandler{uc: uc, enabled: enabled}
}

// GenerateDescription redacta la descripción comercial de un concepto.
// POST /api/ai/describe
// @Summary Generar descripción de concepto
// @Tags ai
// @Accept json
// @Produce json
// @Success 200 {object} dto.GenerateDescriptionResponse
func (h *AIHandler) GenerateDescription(c *fiber.Ctx) error {
	if _, ok := requireUser(c); !ok {
		return nil
	}
	if !h.enabled {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "AI_DISABLED", Message: "generación por IA no configurada",
		})
	}
	var in dto.GenerateDescriptionRequest
	if !validateBody(c, &in) {
		return nil
	}
	resp, err := h.uc.GenerateDescription(c.Context(), in)
	if err != nil {
		// Solo la falla del proveedor es un 502; un concepto vacío es un 400.
		if errors.Is(err, domain.ErrInvalidInput) {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "AI_UPSTREAM", Message: err.Error(),
		})
	}
	return c.JSON(resp)
}
