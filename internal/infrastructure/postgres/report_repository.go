package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas para el tablero, sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DashboardSummary calcula los agregados del período para el tenant.
// Todo se resuelve en la base: COALESCE evita NULLs cuando no hay filas.
func (r *ReportRepo) DashboardSummary(tenantID string, from, to time.Time) (*repository.DashboardSummary, error) {
	var s repository.DashboardSummary

	salesQuery := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE tenant_id = $1 AND status = $2 AND date >= $3 AND date <= $4`
	err := r.q.QueryRow(context.Background(), salesQuery, tenantID, entity.SaleStatusConfirmed, from, to).
		Scan(&s.SalesTotal, &s.SalesCount)
	if err != nil {
		return nil, fmt.Errorf("dashboard sales: %w", err)
	}

	receivablesQuery := `SELECT COALESCE(SUM(current_balance), 0) FROM customers WHERE tenant_id = $1`
	if err := r.q.QueryRow(context.Background(), receivablesQuery, tenantID).Scan(&s.Receivables); err != nil {
		return nil, fmt.Errorf("dashboard receivables: %w", err)
	}

	payablesQuery := `SELECT COALESCE(SUM(current_balance), 0) FROM suppliers WHERE tenant_id = $1`
	if err := r.q.QueryRow(context.Background(), payablesQuery, tenantID).Scan(&s.Payables); err != nil {
		return nil, fmt.Errorf("dashboard payables: %w", err)
	}

	stockQuery := `
		SELECT COALESCE(SUM(stock * cost), 0),
		       COUNT(*) FILTER (WHERE stock < min_stock)
		FROM products WHERE tenant_id = $1`
	if err := r.q.QueryRow(context.Background(), stockQuery, tenantID).Scan(&s.StockValuation, &s.LowStockCount); err != nil {
		return nil, fmt.Errorf("dashboard stock: %w", err)
	}

	return &s, nil
}
