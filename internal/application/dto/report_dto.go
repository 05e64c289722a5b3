package dto

import "github.com/shopspring/decimal"

// DashboardResponse agregados del tablero para el período pedido.
type DashboardResponse struct {
	From           string          `json:"from"`
	To             string          `json:"to"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	SalesCount     int64           `json:"sales_count"`
	Receivables    decimal.Decimal `json:"receivables"`
	Payables       decimal.Decimal `json:"payables"`
	StockValuation decimal.Decimal `json:"stock_valuation"`
	LowStockCount  int64           `json:"low_stock_count"`
}
