package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/frankopalmi/gridmanager-api/pkg/config"
)

// Sin variables de entorno, los parámetros de negocio caen a los defaults:
// ARS, IVA 21%, umbral de stock bajo 5.
func TestLoadSystem_Defaults(t *testing.T) {
	v := viper.New()

	sys := config.LoadSystem(v)

	assert.Equal(t, "ARS", sys.DefaultCurrency)
	assert.True(t, sys.DefaultTaxRate.Equal(decimal.NewFromInt(21)), "tasa %s", sys.DefaultTaxRate)
	assert.Equal(t, int64(5), sys.LowStockThreshold)
}

// Los valores explícitos pisan los defaults.
func TestLoadSystem_ValoresExplicitos(t *testing.T) {
	v := viper.New()
	v.Set("SYSTEM_DEFAULT_CURRENCY", "USD")
	v.Set("SYSTEM_DEFAULT_TAX_RATE", "10.5")
	v.Set("SYSTEM_LOW_STOCK_THRESHOLD", 10)

	sys := config.LoadSystem(v)

	assert.Equal(t, "USD", sys.DefaultCurrency)
	assert.True(t, sys.DefaultTaxRate.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, int64(10), sys.LowStockThreshold)
}

// Una tasa no parseable o negativa cae al default en lugar de romper el arranque.
func TestLoadSystem_TasaInvalidaCaeAlDefault(t *testing.T) {
	v := viper.New()
	v.Set("SYSTEM_DEFAULT_TAX_RATE", "veintiuno")
	assert.True(t, config.LoadSystem(v).DefaultTaxRate.Equal(decimal.NewFromInt(21)))

	v = viper.New()
	v.Set("SYSTEM_DEFAULT_TAX_RATE", "-5")
	assert.True(t, config.LoadSystem(v).DefaultTaxRate.Equal(decimal.NewFromInt(21)))
}

// El DSN escapa caracteres especiales en la contraseña y DATABASE_URL tiene prioridad.
func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss:w/rd",
		DBName:   "gridmanager",
		SSLMode:  "disable",
	}
	dsn := db.ConnectionString()
	assert.Contains(t, dsn, "p%40ss%3Aw%2Frd", "la contraseña debe ir URL-encoded")
	assert.Contains(t, dsn, "/gridmanager?sslmode=disable")

	db.DatabaseURL = "postgresql://u:p@db.example.com:5432/prod?sslmode=require"
	assert.Equal(t, db.DatabaseURL, db.ConnectionString())
}
