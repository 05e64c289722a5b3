package entity

import "time"

// AuditLog registra quién hizo qué y cuándo (append-only, best effort).
type AuditLog struct {
	ID         string
	TenantID   string
	UserID     string
	Action     string // ej. "sale.status", "purchase.status"
	EntityType string
	EntityID   string
	OldValue   string
	NewValue   string
	CreatedAt  time.Time
}
