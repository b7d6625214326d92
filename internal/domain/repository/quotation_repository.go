package repository

import "github.com/spekmx/cotizador-api/internal/domain/entity"

// QuotationRepository puerto de persistencia para cotizaciones y sus líneas.
// La cotización es dueña exclusiva de sus líneas: ReplaceItems y Delete
// operan en cascada.
type QuotationRepository interface {
	Create(q *entity.Quotation) error
	CreateItem(item *entity.QuotationItem) error
	Update(q *entity.Quotation) error
	// ReplaceItems reemplaza el conjunto completo de líneas de la cotización.
	ReplaceItems(quotationID string, items []*entity.QuotationItem) error
	UpdateStatus(q *entity.Quotation) error
	GetByID(id string) (*entity.Quotation, error)
	GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Quotation, error)
	Delete(id string) error
	// NextSequence incrementa de forma atómica el consecutivo del usuario en
	// el periodo (YYMM) y devuelve el nuevo valor. Debe ser seguro ante
	// concurrencia: nunca un read-then-increment.
	NextSequence(userID, period string) (int, error)
	// PeekSequence devuelve el consecutivo siguiente sin reservarlo (para la
	// vista previa del número en el formulario).
	PeekSequence(userID, period string) (int, error)
}
