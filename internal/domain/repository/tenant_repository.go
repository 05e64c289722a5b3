package repository

import "github.com/frankopalmi/gridmanager-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	List(limit, offset int) ([]*entity.Tenant, error)
}
