package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Stock es entero (unidades); el dinero siempre va en decimal para evitar deriva de punto flotante.
type Product struct {
	ID          string
	TenantID    string
	SKU         string // código único por tenant
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de reposición
	TaxRate     decimal.Decimal // IVA en porcentaje: 0, 10.5, 21
	Stock       int64
	MinStock    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
