package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spekmx/cotizador-api/internal/domain/entity"
)

// StatusMetrics conteo y monto acumulado de cotizaciones en un estado.
type StatusMetrics struct {
	Status string
	Count  int
	Amount decimal.Decimal // suma de totales de las cotizaciones en el estado
}

// DashboardRepository consultas de solo lectura para el tablero del usuario.
type DashboardRepository interface {
	// GetStatusMetrics agrupa las cotizaciones del usuario por estado.
	GetStatusMetrics(ctx context.Context, userID string) ([]StatusMetrics, error)
	// GetRecent devuelve las últimas cotizaciones del usuario (solo cabecera).
	GetRecent(ctx context.Context, userID string, limit int) ([]*entity.Quotation, error)
}
