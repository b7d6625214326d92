// Package quote contiene el núcleo de cálculo y edición de cotizaciones:
// el calculador de totales, la selección de impuesto, la lista de ítems y la
// sesión de edición (Draft) que produce snapshots para las superficies de
// render (vista previa, impresión y PDF).
package quote

import (
	"github.com/shopspring/decimal"

	"github.com/spekmx/cotizador-api/internal/domain/entity"
)

// Totals montos derivados de una cotización.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// LineTotal calcula el total de una línea: cantidad × precio unitario.
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// ComputeTotals calcula subtotal, impuesto y total a partir de las líneas y la
// tarifa efectiva (porcentaje 0–100). Es una función pura: se invoca después
// de cada alta/edición/baja de ítem y de cada cambio de modo de impuesto.
//
// La suma interna se mantiene sin redondear para no acumular error entre
// líneas; solo el impuesto se redondea a 2 decimales (mitad hacia arriba).
// Lista vacía → todos los montos en cero (estado válido pero no enviable).
func ComputeTotals(items []entity.QuotationItem, effectiveRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(LineTotal(it.Quantity, it.UnitPrice))
	}
	taxAmount := subtotal.Mul(effectiveRate).Div(decimal.NewFromInt(100)).Round(2)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}
}

// VerifyTotals revisa una cotización leída de almacenamiento y recalcula sus
// campos derivados si detecta inconsistencias (lineTotal ≠ cantidad × precio,
// o totales de cabecera desfasados). Devuelve true si hubo reparación, para
// que el caller lo registre: una inconsistencia nunca se acepta en silencio
// ni se muestra como un cero fabricado.
func VerifyTotals(q *entity.Quotation, items []entity.QuotationItem) bool {
	repaired := false
	for i := range items {
		want := LineTotal(items[i].Quantity, items[i].UnitPrice)
		if !items[i].LineTotal.Equal(want) {
			items[i].LineTotal = want
			repaired = true
		}
	}
	totals := ComputeTotals(items, q.TaxRate)
	if !q.Subtotal.Equal(totals.Subtotal) || !q.TaxAmount.Equal(totals.TaxAmount) || !q.Total.Equal(totals.Total) {
		q.Subtotal = totals.Subtotal
		q.TaxAmount = totals.TaxAmount
		q.Total = totals.Total
		repaired = true
	}
	return repaired
}
