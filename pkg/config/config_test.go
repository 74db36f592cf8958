package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Caso 1: sin variables definidas se usan los valores por defecto.
func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.19", cfg.Orders.TaxRate.String())
	assert.False(t, cfg.Orders.AllowSalespersonBootstrap)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/pymes?sslmode=disable", cfg.DB.ConnectionString())
}

// Caso 2: las variables definidas sobrescriben los valores por defecto.
func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "Memory")
	v.Set("DB_PORT", "6543")
	v.Set("ORDERS_TAX_RATE", "0.10")
	v.Set("ORDERS_ALLOW_SALESPERSON_BOOTSTRAP", "true")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "0.1", cfg.Orders.TaxRate.String())
	assert.True(t, cfg.Orders.AllowSalespersonBootstrap)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

// Caso 3: valores inválidos se rechazan.
func TestFromViper_Invalidos(t *testing.T) {
	v := viper.New()
	v.Set("ORDERS_TAX_RATE", "abc")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("ORDERS_TAX_RATE", "1.5")
	_, err = fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("DB_DRIVER", "mysql")
	_, err = fromViper(v)
	assert.Error(t, err)
}

// Caso 4: la contraseña con caracteres especiales se codifica en el DSN.
func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss/w", DBName: "d", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p%40ss%2Fw@h:5432/d?sslmode=require", c.DSN())
}

// Caso 4: tasa 0 es válida (negocio exento de IVA).
func TestFromViper_TasaCero(t *testing.T) {
	v := viper.New()
	v.Set("ORDERS_TAX_RATE", "0")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.Orders.TaxRate.IsZero())
}
