package repository

import (
	"time"

	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para Purchase y sus líneas.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE) para serializar transiciones concurrentes.
	GetByIDForUpdate(id string) (*entity.Purchase, error)
	GetItems(purchaseID string) ([]*entity.PurchaseItem, error)
	ListByTenant(tenantID string, status *string, limit, offset int) ([]*entity.Purchase, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
}
