package purchases

import (
	"context"

	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para creación de compras y transiciones de estado.
type TxRunner interface {
	RunPurchases(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
