package repository

import (
	"time"

	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE) para serializar transiciones concurrentes.
	GetByIDForUpdate(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	ListByTenant(tenantID string, status *string, limit, offset int) ([]*entity.Sale, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
}
