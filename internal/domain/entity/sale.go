package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusDraft     = "DRAFT"
	SaleStatusConfirmed = "CONFIRMED"
	SaleStatusCancelled = "CANCELLED"
)

// Sale representa la cabecera de una venta.
// Los totales se calculan al crear la venta y no se recalculan en las transiciones de estado.
type Sale struct {
	ID         string
	TenantID   string
	Number     string
	CustomerID string
	Date       time.Time
	Status     string
	Currency   string
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	Total      decimal.Decimal
	Notes      string
	Items      []*SaleItem
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SaleItem representa una línea de venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal // porcentaje
	Subtotal  decimal.Decimal // cantidad * precio unitario, sin impuesto
}

// ValidSaleStatus indica si el valor pertenece a la enumeración de estados de venta.
func ValidSaleStatus(s string) bool {
	return s == SaleStatusDraft || s == SaleStatusConfirmed || s == SaleStatusCancelled
}

// CanTransitionSale indica si la transición de estado es legal.
// CANCELLED es terminal; no existe reapertura (CONFIRMED → DRAFT se rechaza).
func CanTransitionSale(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case SaleStatusDraft:
		return to == SaleStatusConfirmed || to == SaleStatusCancelled
	case SaleStatusConfirmed:
		return to == SaleStatusCancelled
	}
	return false
}
