package dto

import "time"

// RegisterAdjustmentRequest ajuste manual de stock (positivo o negativo).
type RegisterAdjustmentRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"` // delta firmado; no puede ser cero
	Notes     string `json:"notes"`
}

// StockMovementResponse fila del ledger de stock.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}
