package usecase

import (
	"time"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

// ReportUseCase consultas agregadas para el tablero.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Dashboard arma el resumen del período. Sin fechas usa los últimos 30 días.
func (uc *ReportUseCase) Dashboard(tenantID string, from, to *time.Time) (*dto.DashboardResponse, error) {
	end := time.Now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}

	summary, err := uc.repo.DashboardSummary(tenantID, start, end)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		From:           start.Format("2006-01-02"),
		To:             end.Format("2006-01-02"),
		SalesTotal:     summary.SalesTotal,
		SalesCount:     summary.SalesCount,
		Receivables:    summary.Receivables,
		Payables:       summary.Payables,
		StockValuation: summary.StockValuation,
		LowStockCount:  summary.LowStockCount,
	}, nil
}
