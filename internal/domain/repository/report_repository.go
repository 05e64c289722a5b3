package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary agrupa los agregados del tablero.
type DashboardSummary struct {
	SalesTotal      decimal.Decimal // total vendido (ventas confirmadas) en el período
	SalesCount      int64           // cantidad de ventas confirmadas en el período
	Receivables     decimal.Decimal // suma de saldos de clientes
	Payables        decimal.Decimal // suma de saldos de proveedores
	StockValuation  decimal.Decimal // suma de stock * costo
	LowStockCount   int64           // productos con stock por debajo del mínimo
}

// ReportRepository define el puerto de consultas agregadas para reportes.
type ReportRepository interface {
	DashboardSummary(tenantID string, from, to time.Time) (*DashboardSummary, error)
}
