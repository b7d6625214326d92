// Package render convierte un snapshot de cotización en las tres superficies
// de salida: vista previa en pantalla, documento de impresión y PDF.
//
// Las tres superficies consumen el mismo QuotationView, construido una sola
// vez a partir de los totales ya calculados del snapshot. Ninguna superficie
// recalcula subtotal, impuesto o total por su cuenta: ese es el contrato que
// impide que la vista previa y el PDF muestren números distintos.
package render

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/spekmx/cotizador-api/internal/domain/entity"
)

// Meses en español para fechas largas es-MX ("31 de agosto de 2026").
var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// PartyView bloque de una de las partes (emisor o cliente).
type PartyView struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Website        string `json:"website,omitempty"`
	Representative string `json:"representative,omitempty"`
}

// ItemView línea de la tabla de ítems, con sus montos ya formateados.
type ItemView struct {
	Index         int    `json:"index"` // 1-based, orden de inserción
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Image         string `json:"image,omitempty"`
	Quantity      int64  `json:"quantity"`
	UnitPriceText string `json:"unit_price"`
	LineTotalText string `json:"line_total"`
}

// QuotationView modelo de vista único para las tres superficies de render.
// Todos los montos vienen del snapshot; aquí solo se les da formato de moneda
// (MXN, es-MX) y de fecha.
type QuotationView struct {
	Number         string     `json:"quotation_number"`
	DateText       string     `json:"date"`
	ValidUntilText string     `json:"valid_until,omitempty"`
	ProjectName    string     `json:"project_name,omitempty"`
	Customer       PartyView  `json:"customer"`
	Company        PartyView  `json:"company"`
	Items          []ItemView `json:"items"`
	SubtotalText   string     `json:"subtotal"`
	TaxLabel       string     `json:"tax_label"` // ej. "IVA (16%)", "ISR (10%)"
	TaxAmountText  string     `json:"tax_amount"`
	TotalText      string     `json:"total"`
	Notes          string     `json:"notes,omitempty"`
	DeliveryTerms  string     `json:"delivery_terms,omitempty"`
	Template       string     `json:"template"`
	Status         string     `json:"status"`
}

// FormatMoney formatea un monto en pesos mexicanos ("$1,234.56").
func FormatMoney(d decimal.Decimal) string {
	cents := d.Round(2).Shift(2).IntPart()
	return money.New(cents, money.MXN).Display()
}

// formatDate fecha larga en español: "31 de agosto de 2026".
func formatDate(y int, m int, d int) string {
	return fmt.Sprintf("%d de %s de %d", d, spanishMonths[m-1], y)
}

// taxLabel arma la etiqueta del renglón de impuesto: nombre + tarifa.
func taxLabel(q entity.Quotation) string {
	name := "IVA"
	switch q.TaxMode {
	case entity.TaxModeCustom:
		name = q.TaxName
		if name == "" {
			name = "Impuesto"
		}
	case entity.TaxModeNone:
		name = "Impuestos"
	}
	rate := q.TaxRate.Round(2)
	// Tarifas enteras sin decimales: "16%", no "16.00%".
	if rate.Equal(rate.Truncate(0)) {
		return fmt.Sprintf("%s (%s%%)", name, rate.Truncate(0).String())
	}
	return fmt.Sprintf("%s (%s%%)", name, rate.String())
}

// BuildView construye el modelo de vista a partir de un snapshot. No tiene
// efectos secundarios y no recalcula: los montos de cabecera se leen tal cual
// del snapshot.
func BuildView(q entity.Quotation, items []entity.QuotationItem) QuotationView {
	v := QuotationView{
		Number:      q.QuotationNumber,
		DateText:    formatDate(q.Date.Year(), int(q.Date.Month()), q.Date.Day()),
		ProjectName: q.ProjectName,
		Customer: PartyView{
			Name:    q.Customer.Name,
			Email:   q.Customer.Email,
			Phone:   q.Customer.Phone,
			Address: q.Customer.Address,
		},
		Company: PartyView{
			Name:           q.Company.Name,
			Email:          q.Company.Email,
			Phone:          q.Company.Phone,
			Address:        q.Company.Address,
			Website:        q.Company.Website,
			Representative: q.Company.Representative,
		},
		SubtotalText:  FormatMoney(q.Subtotal),
		TaxLabel:      taxLabel(q),
		TaxAmountText: FormatMoney(q.TaxAmount),
		TotalText:     FormatMoney(q.Total),
		Notes:         q.Notes,
		DeliveryTerms: q.DeliveryTerms,
		Template:      q.Template,
		Status:        q.Status,
	}
	if q.ValidUntil != nil {
		u := *q.ValidUntil
		v.ValidUntilText = formatDate(u.Year(), int(u.Month()), u.Day())
	}
	v.Items = make([]ItemView, 0, len(items))
	for i, it := range items {
		v.Items = append(v.Items, ItemView{
			Index:         i + 1,
			Name:          it.Name,
			Description:   it.Description,
			Image:         it.Image,
			Quantity:      it.Quantity,
			UnitPriceText: FormatMoney(it.UnitPrice),
			LineTotalText: FormatMoney(it.LineTotal),
		})
	}
	return v
}
