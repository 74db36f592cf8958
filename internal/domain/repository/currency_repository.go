package repository

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// CurrencyRepository define el puerto de persistencia para monedas.
type CurrencyRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Currency, error)
	// GetDefault devuelve la moneda activa de menor ID, o (nil, nil) si no hay ninguna.
	GetDefault(ctx context.Context) (*entity.Currency, error)
	// Seed inserta la moneda si su código no existe; si existe inactiva, la reactiva.
	Seed(ctx context.Context, c *entity.Currency) error
}
