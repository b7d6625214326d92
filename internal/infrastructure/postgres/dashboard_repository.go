package postgres

import (
	"context"
	"fmt"

	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// GetStatusMetrics agrupa las cotizaciones del usuario por estado.
func (r *DashboardRepo) GetStatusMetrics(ctx context.Context, userID string) ([]repository.StatusMetrics, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0)
		FROM quotations
		WHERE user_id = $1
		GROUP BY status`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query status metrics: %w", err)
	}
	defer rows.Close()

	var list []repository.StatusMetrics
	for rows.Next() {
		var m repository.StatusMetrics
		if err := rows.Scan(&m.Status, &m.Count, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan status metrics: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetRecent devuelve las últimas cotizaciones del usuario (solo cabecera).
func (r *DashboardRepo) GetRecent(ctx context.Context, userID string, limit int) ([]*entity.Quotation, error) {
	query := `
		SELECT id, quotation_number, date, customer_name, project_name, total, status, template
		FROM quotations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent quotations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quotation
	for rows.Next() {
		var q entity.Quotation
		var customerName, projectName *string
		if err := rows.Scan(
			&q.ID, &q.QuotationNumber, &q.Date, &customerName, &projectName,
			&q.Total, &q.Status, &q.Template,
		); err != nil {
			return nil, fmt.Errorf("scan recent quotation: %w", err)
		}
		q.UserID = userID
		q.Customer.Name = derefStr(customerName)
		q.ProjectName = derefStr(projectName)
		list = append(list, &q)
	}
	return list, rows.Err()
}
