package repository

import (
	"github.com/shopspring/decimal"

	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para cuentas de dinero.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	// GetForUpdate bloquea la fila de la cuenta (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Account, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Account, error)
	// AdjustBalance suma delta (puede ser negativo) al saldo de forma atómica.
	AdjustBalance(id string, delta decimal.Decimal) error
}

// AccountMovementRepository define el puerto para el ledger de movimientos de cuenta (append-only).
type AccountMovementRepository interface {
	Create(movement *entity.AccountMovement) error
	ListByAccount(accountID string, limit, offset int) ([]*entity.AccountMovement, error)
}
