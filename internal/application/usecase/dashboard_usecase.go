package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

const recentLimit = 5

// DashboardUseCase arma el resumen de la pantalla principal. Las consultas son
// independientes y se lanzan en paralelo.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	var (
		wg         sync.WaitGroup
		metrics    []repository.StatusMetrics
		recent     []*entity.Quotation
		metricsErr error
		recentErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		metrics, metricsErr = uc.repo.GetStatusMetrics(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		recent, recentErr = uc.repo.GetRecent(ctx, userID, recentLimit)
	}()
	wg.Wait()

	if metricsErr != nil {
		return nil, fmt.Errorf("métricas por estado: %w", metricsErr)
	}
	if recentErr != nil {
		return nil, fmt.Errorf("cotizaciones recientes: %w", recentErr)
	}

	resp := &dto.DashboardResponse{
		ByStatus:       make(map[string]dto.StatusMetricDTO, len(metrics)),
		AcceptedAmount: decimal.Zero,
		Recent:         make([]dto.QuotationSummaryResponse, 0, len(recent)),
	}
	for _, m := range metrics {
		resp.TotalQuotations += int64(m.Count)
		resp.ByStatus[m.Status] = dto.StatusMetricDTO{Count: int64(m.Count), Amount: m.Amount}
		if m.Status == entity.StatusAccepted {
			resp.AcceptedAmount = m.Amount
		}
	}
	for _, q := range recent {
		resp.Recent = append(resp.Recent, dto.QuotationSummaryResponse{
			ID:              q.ID,
			QuotationNumber: q.QuotationNumber,
			Date:            q.Date.Format("2006-01-02"),
			CustomerName:    q.Customer.Name,
			ProjectName:     q.ProjectName,
			Total:           q.Total,
			Status:          q.Status,
			Template:        q.Template,
		})
	}
	return resp, nil
}
