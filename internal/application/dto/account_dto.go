package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest alta de cuenta de dinero.
type CreateAccountRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"` // cash, bank
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"` // saldo inicial
}

// RegisterAccountMovementRequest depósito o extracción sobre una cuenta.
type RegisterAccountMovementRequest struct {
	Type        string          `json:"type"` // deposit, withdrawal
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

// AccountResponse cuenta con saldo actual.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountMovementResponse fila del ledger de la cuenta.
type AccountMovementResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
