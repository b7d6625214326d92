package dto

import "github.com/shopspring/decimal"

// StatusMetricDTO conteo y monto acumulado de un estado.
type StatusMetricDTO struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardResponse resumen para la pantalla principal.
type DashboardResponse struct {
	TotalQuotations int64                      `json:"total_quotations"`
	ByStatus        map[string]StatusMetricDTO `json:"by_status"`
	AcceptedAmount  decimal.Decimal            `json:"accepted_amount"`
	Recent          []QuotationSummaryResponse `json:"recent"`
}
