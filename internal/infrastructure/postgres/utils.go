package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de violación de constraint único.
const uniqueViolationCode = "23505"

// isUniqueViolation verifica si un error es una violación de constraint único.
// Cubre emails de usuarios, SKUs de productos y números de venta/compra por tenant.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	// Fallback para errores envueltos que no exponen *pgconn.PgError
	return strings.Contains(err.Error(), uniqueViolationCode)
}
