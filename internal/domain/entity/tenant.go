package entity

import "time"

// Tenant representa una organización cliente del sistema.
// Todos los datos de negocio se aíslan por TenantID.
type Tenant struct {
	ID        string
	Name      string
	TaxID     string // CUIT
	Currency  string // moneda base, ej. ARS
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
