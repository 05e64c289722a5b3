package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para creación de ventas y transiciones de estado.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// ReceiptLine es una línea de venta lista para imprimir (con nombre de producto resuelto).
type ReceiptLine struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptGenerator genera la representación PDF de una venta (comprobante no fiscal).
type ReceiptGenerator interface {
	GenerateSaleReceipt(
		ctx context.Context,
		sale *entity.Sale,
		tenant *entity.Tenant,
		customer *entity.Customer,
		lines []ReceiptLine,
	) ([]byte, error)
}
