package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra. RECEIVED es el equivalente a CONFIRMED en ventas.
const (
	PurchaseStatusDraft     = "DRAFT"
	PurchaseStatusReceived  = "RECEIVED"
	PurchaseStatusCancelled = "CANCELLED"
)

// Purchase representa la cabecera de una compra a proveedor.
type Purchase struct {
	ID         string
	TenantID   string
	Number     string
	SupplierID string
	Date       time.Time
	Status     string
	Currency   string
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	Total      decimal.Decimal
	Notes      string
	Items      []*PurchaseItem
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseItem representa una línea de compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TaxRate    decimal.Decimal
	Subtotal   decimal.Decimal
}

// ValidPurchaseStatus indica si el valor pertenece a la enumeración de estados de compra.
func ValidPurchaseStatus(s string) bool {
	return s == PurchaseStatusDraft || s == PurchaseStatusReceived || s == PurchaseStatusCancelled
}

// CanTransitionPurchase indica si la transición de estado es legal.
// CANCELLED es terminal y una compra recibida no vuelve a DRAFT.
func CanTransitionPurchase(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case PurchaseStatusDraft:
		return to == PurchaseStatusReceived || to == PurchaseStatusCancelled
	case PurchaseStatusReceived:
		return to == PurchaseStatusCancelled
	}
	return false
}
