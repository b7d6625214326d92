package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spekmx/cotizador-api/internal/application/usecase"
)

// DashboardHandler resumen de la pantalla principal (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary devuelve conteos y montos por estado más las cotizaciones recientes.
// GET /api/dashboard
// @Summary Resumen del tablero
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	resp, err := h.uc.GetSummary(c.Context(), userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}
