package repository

import (
	"github.com/shopspring/decimal"

	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// AdjustBalance se usa dentro de transacciones de cambio de estado de venta.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTenantAndTaxID(tenantID, taxID string) (*entity.Customer, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	// AdjustBalance suma delta (puede ser negativo) al saldo corriente de forma atómica.
	AdjustBalance(id string, delta decimal.Decimal) error
}
