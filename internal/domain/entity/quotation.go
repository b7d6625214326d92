package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una cotización.
// draft → sent → accepted | rejected. Los estados accepted y rejected son
// terminales: una cotización terminal no admite más ediciones.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsTerminalStatus indica si s congela la cotización.
func IsTerminalStatus(s string) bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransition valida una transición de estado solicitada por el usuario.
func CanTransition(from, to string) bool {
	switch from {
	case StatusDraft:
		return to == StatusSent
	case StatusSent:
		return to == StatusAccepted || to == StatusRejected
	}
	return false
}

// Plantillas visuales disponibles para la cotización.
const (
	TemplateProfessional = "professional"
	TemplateMinimalist   = "minimalist"
	TemplateCreative     = "creative"
	TemplateCorporate    = "corporate"
)

// ValidTemplate indica si id es una plantilla conocida.
func ValidTemplate(id string) bool {
	switch id {
	case TemplateProfessional, TemplateMinimalist, TemplateCreative, TemplateCorporate:
		return true
	}
	return false
}

// Modos de impuesto de la cotización.
const (
	TaxModeIVA    = "iva"    // IVA estándar, tarifa fija 16%
	TaxModeCustom = "custom" // impuesto con nombre y tarifa definidos por el usuario
	TaxModeNone   = "none"   // sin impuesto
)

// CustomerInfo bloque de cliente embebido en la cotización.
// Se copia del catálogo de clientes (o se captura libre en el formulario);
// no es una referencia viva.
type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CompanySnapshot copia de los datos de la empresa emisora tomada al crear o
// editar la cotización. Editar después el perfil de empresa no altera
// cotizaciones ya emitidas.
type CompanySnapshot struct {
	Name           string
	Email          string
	Phone          string
	Address        string
	Website        string
	Representative string
}

// IsZero indica si el snapshot no fue capturado.
func (s CompanySnapshot) IsZero() bool {
	return s.Name == "" && s.Email == "" && s.Phone == "" && s.Address == ""
}

// Quotation cabecera de una cotización con sus totales derivados.
// Subtotal, TaxAmount y Total se calculan siempre en el dominio
// (quote.ComputeTotals); nunca los fija el usuario directamente.
type Quotation struct {
	ID              string
	UserID          string
	QuotationNumber string // COT-YYMM-NNN, asignado por el servidor, inmutable
	Date            time.Time
	ValidUntil      *time.Time
	Customer        CustomerInfo
	ProjectName     string
	Subtotal        decimal.Decimal
	TaxMode         string // ver constantes TaxMode*
	TaxName         string // nombre del impuesto personalizado (vacío si no aplica)
	TaxRate         decimal.Decimal
	TaxAmount       decimal.Decimal
	Total           decimal.Decimal
	Notes           string
	DeliveryTerms   string
	Template        string // ver constantes Template*
	Status          string // ver constantes Status*
	Company         CompanySnapshot
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuotationItem línea de una cotización. LineTotal es derivado y debe cumplir
// LineTotal == Quantity × UnitPrice en todo momento.
type QuotationItem struct {
	ID          string
	QuotationID string
	Position    int // orden de inserción, preservado en listados
	Name        string
	Description string
	Image       string // referencia opaca: URL o data URI
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
