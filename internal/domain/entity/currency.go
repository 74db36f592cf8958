package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency es una moneda de referencia. La de menor ID activa es la moneda por defecto.
type Currency struct {
	ID        int64
	Code      string
	Name      string
	Symbol    string
	Rate      decimal.Decimal
	Active    bool
	CreatedAt time.Time
}

// DefaultCurrency construye la fila semilla usada cuando la tabla de monedas está vacía.
func DefaultCurrency(now time.Time) *Currency {
	return &Currency{
		Code:      "LOCAL",
		Name:      "Moneda Local",
		Symbol:    "¤",
		Rate:      decimal.NewFromInt(1),
		Active:    true,
		CreatedAt: now,
	}
}
