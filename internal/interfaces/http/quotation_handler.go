package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/application/quotation"
)

// QuotationHandler maneja las peticiones HTTP de cotizaciones (protegido).
type QuotationHandler struct {
	uc     *quotation.UseCase
	render *quotation.RenderUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *quotation.UseCase, render *quotation.RenderUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc, render: render}
}

// Create da de alta una cotización con sus líneas.
// POST /api/quotations
// @Summary Crear cotización
// @Tags quotations
// @Accept json
// @Produce json
// @Success 201 {object} dto.QuotationResponse
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.QuotationRequest
	if !validateBody(c, &in) {
		return nil
	}
	resp, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List devuelve el listado paginado del usuario.
// GET /api/quotations
// @Summary Listar cotizaciones
// @Tags quotations
// @Produce json
// @Success 200 {object} dto.QuotationListResponse
func (h *QuotationHandler) List(c *fiber.Ctx) error {
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

// GetByID devuelve una cotización completa.
// GET /api/quotations/:id
// @Summary Obtener cotización
// @Tags quotations
// @Produce json
// @Success 200 {object} dto.QuotationResponse
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
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

// Update edita una cotización en borrador.
// PUT /api/quotations/:id
// @Summary Editar cotización
// @Tags quotations
// @Accept json
// @Produce json
// @Success 200 {object} dto.QuotationResponse
func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.QuotationRequest
	if !validateBody(c, &in) {
		return nil
	}
	resp, err := h.uc.Update(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// ChangeStatus aplica una transición de estado.
// PATCH /api/quotations/:id/status
// @Summary Cambiar estado de una cotización
// @Tags quotations
// @Accept json
// @Produce json
// @Success 200 {object} dto.QuotationResponse
func (h *QuotationHandler) ChangeStatus(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	var in dto.StatusChangeRequest
	if !validateBody(c, &in) {
		return nil
	}
	resp, err := h.uc.ChangeStatus(userID, c.Params("id"), in.Status)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina una cotización.
// DELETE /api/quotations/:id
// @Summary Eliminar cotización
// @Tags quotations
// @Success 204
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(userID, c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateNumber devuelve el folio tentativo del periodo actual.
// GET /api/quotations/generate-number
// @Summary Folio tentativo
// @Tags quotations
// @Produce json
// @Success 200 {object} dto.NumberPreviewResponse
func (h *QuotationHandler) GenerateNumber(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	resp, err := h.uc.NextNumberPreview(userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// Preview devuelve la vista previa estructurada (view + paleta).
// GET /api/quotations/:id/preview?template=
// @Summary Vista previa de cotización
// @Tags quotations
// @Produce json
// @Success 200 {object} render.PreviewDocument
func (h *QuotationHandler) Preview(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	doc, err := h.render.Preview(userID, c.Params("id"), c.Query("template"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(doc)
}

// Print devuelve el documento HTML autocontenido de impresión.
// GET /api/quotations/:id/print?template=
// @Summary Documento de impresión
// @Tags quotations
// @Produce html
// @Success 200 {string} string
func (h *QuotationHandler) Print(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	doc, err := h.render.Print(userID, c.Params("id"), c.Query("template"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(doc)
}

// DownloadPDF genera y descarga el PDF de la cotización.
// GET /api/quotations/:id/pdf?template=
// @Summary Descargar PDF
// @Tags quotations
// @Produce application/pdf
// @Success 200 {file} binary
func (h *QuotationHandler) DownloadPDF(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	data, filename, err := h.render.PDF(c.Context(), userID, c.Params("id"), c.Query("template"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
