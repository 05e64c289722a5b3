package repository

import "github.com/frankopalmi/gridmanager-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// GetForUpdate y AdjustStock se usan dentro de transacciones para mutar stock sin carreras.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByTenantAndSKU(tenantID, sku string) (*entity.Product, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	// AdjustStock suma delta (puede ser negativo) al stock de forma atómica.
	AdjustStock(id string, delta int64) error
}
