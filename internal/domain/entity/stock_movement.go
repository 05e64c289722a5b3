package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada (compra recibida, venta cancelada)
	MovementTypeOUT        = "OUT"        // salida (venta confirmada)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
)

// StockMovement representa un movimiento de stock.
// Es un ledger append-only: se crea una fila por línea por transición y nunca se muta.
type StockMovement struct {
	ID        string
	TenantID  string
	ProductID string
	Type      string
	Quantity  int64  // positivo entrada, negativo salida
	Reference string // número de venta/compra o nota de ajuste
	CreatedAt time.Time
	CreatedBy string // UserID
}
