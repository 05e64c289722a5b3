package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del tenant.
// CurrentBalance es el saldo corriente: sube al confirmar ventas, baja al cancelarlas o al cobrar.
type Customer struct {
	ID             string
	TenantID       string
	Name           string
	TaxID          string // CUIT o DNI
	Email          string
	Phone          string
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
