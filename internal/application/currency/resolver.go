// Package currency resuelve la moneda de una orden.
package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

// Resolve devuelve el pk_moneda. Con id verifica que exista; sin id usa la moneda activa de
// menor ID y, si no hay ninguna activa, siembra (o reactiva) la moneda local por defecto.
func Resolve(ctx context.Context, repo repository.CurrencyRepository, id *int64) (int64, error) {
	if id != nil {
		c, err := repo.GetByID(ctx, *id)
		if err != nil {
			return 0, err
		}
		if c == nil {
			return 0, fmt.Errorf("%w: moneda %d", domain.ErrNotFound, *id)
		}
		return c.ID, nil
	}

	def, err := repo.GetDefault(ctx)
	if err != nil {
		return 0, err
	}
	if def != nil {
		return def.ID, nil
	}

	if err := repo.Seed(ctx, entity.DefaultCurrency(time.Now())); err != nil {
		return 0, fmt.Errorf("sembrar moneda por defecto: %w", err)
	}
	def, err = repo.GetDefault(ctx)
	if err != nil {
		return 0, err
	}
	if def == nil {
		return 0, fmt.Errorf("%w: no se pudo crear una moneda por defecto", domain.ErrInternal)
	}
	return def.ID, nil
}
