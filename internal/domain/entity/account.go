package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta de dinero.
const (
	AccountTypeCash = "cash"
	AccountTypeBank = "bank"
)

// Tipos de movimiento de cuenta.
const (
	AccountMovementDeposit    = "deposit"
	AccountMovementWithdrawal = "withdrawal"
)

// Account representa una cuenta de dinero del tenant (caja o banco).
type Account struct {
	ID        string
	TenantID  string
	Name      string
	Type      string // cash, bank
	Currency  string
	Balance   decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountMovement representa un movimiento de cuenta (append-only).
type AccountMovement struct {
	ID          string
	AccountID   string
	Type        string // deposit, withdrawal
	Amount      decimal.Decimal // siempre positivo; el tipo define el signo
	Description string
	Reference   string // venta, compra, recibo
	CreatedAt   time.Time
	CreatedBy   string
}
