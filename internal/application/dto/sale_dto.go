package dto

import "github.com/shopspring/decimal"

// SaleItemRequest línea de venta entrante.
type SaleItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"` // nil usa el precio de lista del producto
}

// CreateSaleRequest alta de venta (queda en DRAFT).
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id"`
	Currency   string            `json:"currency"` // vacío usa la moneda default del sistema
	Notes      string            `json:"notes"`
	Items      []SaleItemRequest `json:"items"`
}

// UpdateSaleStatusRequest cuerpo del PATCH de estado.
type UpdateSaleStatusRequest struct {
	Status string `json:"status"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con totales e ítems.
type SaleResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name,omitempty"`
	Date         string             `json:"date"`
	Status       string             `json:"status"`
	Currency     string             `json:"currency"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	TaxTotal     decimal.Decimal    `json:"tax_total"`
	Total        decimal.Decimal    `json:"total"`
	Notes        string             `json:"notes,omitempty"`
	Items        []SaleItemResponse `json:"items"`
}
