package dto

import "github.com/shopspring/decimal"

// QuotationItemRequest renglón de una cotización entrante.
type QuotationItemRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// TaxRequest selección de impuesto. Mode vacío equivale a IVA estándar.
type TaxRequest struct {
	Mode string          `json:"mode" validate:"omitempty,oneof=iva custom none"`
	Name string          `json:"name,omitempty"`
	Rate decimal.Decimal `json:"rate,omitempty"`
}

// QuotationRequest alta o edición de una cotización. ID es opcional: si el
// cliente lo envía, reintentos del mismo alta son idempotentes.
type QuotationRequest struct {
	ID              string                 `json:"id,omitempty" validate:"omitempty,uuid4"`
	Date            string                 `json:"date,omitempty"`
	ValidUntil      string                 `json:"valid_until,omitempty"`
	CustomerName    string                 `json:"customer_name,omitempty"`
	CustomerEmail   string                 `json:"customer_email,omitempty"`
	CustomerPhone   string                 `json:"customer_phone,omitempty"`
	CustomerAddress string                 `json:"customer_address,omitempty"`
	ProjectName     string                 `json:"project_name,omitempty"`
	Items           []QuotationItemRequest `json:"items" validate:"dive"`
	Tax             TaxRequest             `json:"tax"`
	Notes           string                 `json:"notes,omitempty"`
	DeliveryTerms   string                 `json:"delivery_terms,omitempty"`
	Template        string                 `json:"template,omitempty" validate:"omitempty,oneof=professional minimalist creative corporate"`
	Status          string                 `json:"status,omitempty" validate:"omitempty,oneof=draft sent"`
}

// StatusChangeRequest transición de estado de una cotización.
type StatusChangeRequest struct {
	Status string `json:"status" validate:"required,oneof=sent accepted rejected"`
}

// QuotationItemResponse renglón en la respuesta.
type QuotationItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// QuotationResponse cotización completa.
type QuotationResponse struct {
	ID              string                  `json:"id"`
	QuotationNumber string                  `json:"quotation_number"`
	Date            string                  `json:"date"`
	ValidUntil      string                  `json:"valid_until"`
	CustomerName    string                  `json:"customer_name,omitempty"`
	CustomerEmail   string                  `json:"customer_email,omitempty"`
	CustomerPhone   string                  `json:"customer_phone,omitempty"`
	CustomerAddress string                  `json:"customer_address,omitempty"`
	ProjectName     string                  `json:"project_name,omitempty"`
	Items           []QuotationItemResponse `json:"items"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	TaxMode         string                  `json:"tax_mode"`
	TaxName         string                  `json:"tax_name"`
	TaxRate         decimal.Decimal         `json:"tax_rate"`
	TaxAmount       decimal.Decimal         `json:"tax_amount"`
	Total           decimal.Decimal         `json:"total"`
	Notes           string                  `json:"notes,omitempty"`
	DeliveryTerms   string                  `json:"delivery_terms,omitempty"`
	Template        string                  `json:"template"`
	Status          string                  `json:"status"`
	CreatedAt       string                  `json:"created_at,omitempty"`
	UpdatedAt       string                  `json:"updated_at,omitempty"`
}

// QuotationSummaryResponse fila de listado.
type QuotationSummaryResponse struct {
	ID              string          `json:"id"`
	QuotationNumber string          `json:"quotation_number"`
	Date            string          `json:"date"`
	CustomerName    string          `json:"customer_name,omitempty"`
	ProjectName     string          `json:"project_name,omitempty"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	Template        string          `json:"template"`
}

// QuotationListResponse listado paginado.
type QuotationListResponse struct {
	Items  []QuotationSummaryResponse `json:"items"`
	Total  int64                      `json:"total"`
	Limit  int                        `json:"limit"`
	Offset int                        `json:"offset"`
}

// NumberPreviewResponse folio tentativo para el formulario de alta.
type NumberPreviewResponse struct {
	QuotationNumber string `json:"quotation_number"`
}
