package quotation

import (
	"context"

	"github.com/spekmx/cotizador-api/internal/domain/repository"
	"github.com/spekmx/cotizador-api/internal/render"
)

// TxRunner ejecuta fn dentro de una transacción; el repositorio que recibe fn
// está atado a esa transacción. Si fn devuelve error se hace rollback.
type TxRunner interface {
	RunQuotation(ctx context.Context, fn func(repo repository.QuotationRepository) error) error
}

// PDFGenerator puerto del backend que convierte la vista de una cotización en
// un documento PDF.
type PDFGenerator interface {
	GenerateQuotationPDF(ctx context.Context, view render.QuotationView) ([]byte, error)
}
