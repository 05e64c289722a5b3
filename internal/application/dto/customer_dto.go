package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateCustomerRequest edición de cliente.
type UpdateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomerResponse cliente con saldo corriente.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	TaxID          string          `json:"tax_id"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
