package quote

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
)

// ItemInput datos para agregar una línea nueva.
type ItemInput struct {
	Name        string
	Description string
	Image       string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// ItemPatch cambios parciales sobre una línea existente. Un puntero nil deja
// el campo como está.
type ItemPatch struct {
	Name        *string
	Description *string
	Quantity    *int64
	UnitPrice   *decimal.Decimal
}

// ItemList colección ordenada y mutable de líneas de cotización. Cada línea
// recibe un ID estable (UUID) al agregarse: el índice no sirve como identidad
// porque las bajas desplazan posiciones. Toda mutación de cantidad o precio
// recalcula LineTotal antes de retornar, de modo que ningún lector observa un
// estado intermedio inconsistente.
type ItemList struct {
	items []entity.QuotationItem
}

// NewItemList crea una lista vacía.
func NewItemList() *ItemList {
	return &ItemList{}
}

// ItemListFrom crea una lista a partir de líneas ya persistidas, normalizando
// LineTotal y posiciones.
func ItemListFrom(items []entity.QuotationItem) *ItemList {
	l := &ItemList{items: make([]entity.QuotationItem, len(items))}
	copy(l.items, items)
	for i := range l.items {
		if l.items[i].ID == "" {
			l.items[i].ID = uuid.New().String()
		}
		l.items[i].Position = i
		l.items[i].LineTotal = LineTotal(l.items[i].Quantity, l.items[i].UnitPrice)
	}
	return l
}

// Add agrega una línea al final y devuelve su ID estable.
// Cantidad por defecto 1, precio por defecto 0. Precio negativo es inválido.
func (l *ItemList) Add(in ItemInput) (string, error) {
	if in.Quantity < 0 || in.UnitPrice.IsNegative() {
		return "", domain.ErrInvalidInput
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	item := entity.QuotationItem{
		ID:          uuid.New().String(),
		Position:    len(l.items),
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Quantity:    qty,
		UnitPrice:   in.UnitPrice,
		LineTotal:   LineTotal(qty, in.UnitPrice),
	}
	l.items = append(l.items, item)
	return item.ID, nil
}

// Update aplica un patch a la línea id. Si el patch toca cantidad o precio,
// recalcula LineTotal antes de retornar. Cantidad < 1 o precio negativo se
// rechazan completos y la línea conserva sus valores anteriores.
func (l *ItemList) Update(id string, p ItemPatch) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return domain.ErrItemNotFound
	}
	if p.Quantity != nil && *p.Quantity < 1 {
		return domain.ErrInvalidInput
	}
	if p.UnitPrice != nil && p.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	it := &l.items[idx]
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		it.UnitPrice = *p.UnitPrice
	}
	if p.Quantity != nil || p.UnitPrice != nil {
		it.LineTotal = LineTotal(it.Quantity, it.UnitPrice)
	}
	return nil
}

// Remove elimina la línea id y compacta las posiciones.
func (l *ItemList) Remove(id string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return domain.ErrItemNotFound
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	for i := range l.items {
		l.items[i].Position = i
	}
	return nil
}

// SetImage asigna la referencia de imagen de una línea. No requiere recálculo.
func (l *ItemList) SetImage(id, ref string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return domain.ErrItemNotFound
	}
	l.items[idx].Image = ref
	return nil
}

// ClearImage quita la imagen de una línea.
func (l *ItemList) ClearImage(id string) error {
	return l.SetImage(id, "")
}

// Items devuelve una copia de las líneas en orden de inserción.
func (l *ItemList) Items() []entity.QuotationItem {
	out := make([]entity.QuotationItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len número de líneas.
func (l *ItemList) Len() int { return len(l.items) }

func (l *ItemList) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
