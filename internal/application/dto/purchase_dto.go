package dto

import "github.com/shopspring/decimal"

// PurchaseItemRequest línea de compra entrante. El precio unitario es el costo pactado.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest alta de compra (queda en DRAFT).
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Currency   string                `json:"currency"`
	Notes      string                `json:"notes"`
	Items      []PurchaseItemRequest `json:"items"`
}

// UpdatePurchaseStatusRequest cuerpo del PATCH de estado.
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status"`
}

// PurchaseItemResponse línea de compra persistida.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra con totales e ítems.
type PurchaseResponse struct {
	ID           string                 `json:"id"`
	Number       string                 `json:"number"`
	SupplierID   string                 `json:"supplier_id"`
	SupplierName string                 `json:"supplier_name,omitempty"`
	Date         string                 `json:"date"`
	Status       string                 `json:"status"`
	Currency     string                 `json:"currency"`
	Subtotal     decimal.Decimal        `json:"subtotal"`
	TaxTotal     decimal.Decimal        `json:"tax_total"`
	Total        decimal.Decimal        `json:"total"`
	Notes        string                 `json:"notes,omitempty"`
	Items        []PurchaseItemResponse `json:"items"`
}
