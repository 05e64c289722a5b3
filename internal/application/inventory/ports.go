package inventory

import (
	"context"

	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para los ajustes manuales de stock.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
