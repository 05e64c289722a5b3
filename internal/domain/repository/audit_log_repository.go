package repository

import "github.com/frankopalmi/gridmanager-api/internal/domain/entity"

// AuditLogRepository define el puerto para el registro de auditoría (append-only).
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.AuditLog, error)
}
