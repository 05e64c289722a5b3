package repository

import "github.com/frankopalmi/gridmanager-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
// El ledger es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.StockMovement, error)
}
