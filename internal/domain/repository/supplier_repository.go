package repository

import (
	"github.com/shopspring/decimal"

	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByTenantAndTaxID(tenantID, taxID string) (*entity.Supplier, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
	// AdjustBalance suma delta (puede ser negativo) al saldo corriente de forma atómica.
	AdjustBalance(id string, delta decimal.Decimal) error
}
