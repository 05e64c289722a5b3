package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor del tenant.
// CurrentBalance sube al recibir compras y baja al cancelarlas o al pagar.
type Supplier struct {
	ID             string
	TenantID       string
	Name           string
	TaxID          string // CUIT
	Email          string
	Phone          string
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
