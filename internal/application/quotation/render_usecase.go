package quotation

import (
	"context"
	"fmt"

	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/render"
)

// RenderUseCase superficies de salida de una cotización: vista previa,
// impresión en HTML y PDF. Las tres parten de la misma vista construida por
// render.BuildView; ninguna recalcula montos por su cuenta.
type RenderUseCase struct {
	uc     *UseCase
	pdfGen PDFGenerator
}

func NewRenderUseCase(uc *UseCase, pdfGen PDFGenerator) *RenderUseCase {
	return &RenderUseCase{uc: uc, pdfGen: pdfGen}
}

// Preview devuelve la vista previa estructurada (vista + paleta de la
// plantilla). templateOverride permite probar otra plantilla sin editar la
// cotización.
func (r *RenderUseCase) Preview(userID, id, templateOverride string) (*render.PreviewDocument, error) {
	view, err := r.buildView(userID, id, templateOverride)
	if err != nil {
		return nil, err
	}
	doc := render.Preview(view)
	return &doc, nil
}

// Print devuelve el documento HTML autocontenido listo para window.print.
func (r *RenderUseCase) Print(userID, id, templateOverride string) ([]byte, error) {
	view, err := r.buildView(userID, id, templateOverride)
	if err != nil {
		return nil, err
	}
	return render.Print(view)
}

// PDF genera el documento PDF y devuelve su nombre de archivo sugerido.
func (r *RenderUseCase) PDF(ctx context.Context, userID, id, templateOverride string) ([]byte, string, error) {
	q, items, err := r.uc.load(userID, id)
	if err != nil {
		return nil, "", err
	}
	applyOverride(q, templateOverride)
	view := render.BuildView(*q, items)
	data, err := r.pdfGen.GenerateQuotationPDF(ctx, view)
	if err != nil {
		return nil, "", fmt.Errorf("generando PDF: %w", err)
	}
	filename := fmt.Sprintf("cotizacion_%s.pdf", q.QuotationNumber)
	return data, filename, nil
}

func (r *RenderUseCase) buildView(userID, id, templateOverride string) (render.QuotationView, error) {
	q, items, err := r.uc.load(userID, id)
	if err != nil {
		return render.QuotationView{}, err
	}
	applyOverride(q, templateOverride)
	return render.BuildView(*q, items), nil
}

// applyOverride cambia la plantilla solo para este render; no persiste.
func applyOverride(q *entity.Quotation, templateID string) {
	if templateID != "" && entity.ValidTemplate(templateID) {
		q.Template = templateID
	}
}
