package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

// CurrencyRepo implementación de CurrencyRepository sobre la tabla moneda.
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el repositorio. Pasar pool o tx (Querier).
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

const currencyColumns = `pk_moneda, codigo, nombre, COALESCE(simbolo, ''), tasa, activo, created_at`

func (r *CurrencyRepo) GetByID(ctx context.Context, id int64) (*entity.Currency, error) {
	return r.getOne(ctx, `SELECT `+currencyColumns+` FROM moneda WHERE pk_moneda = $1`, id)
}

func (r *CurrencyRepo) GetDefault(ctx context.Context) (*entity.Currency, error) {
	return r.getOne(ctx, `SELECT `+currencyColumns+` FROM moneda WHERE activo ORDER BY pk_moneda LIMIT 1`)
}

// Seed inserta la moneda; si ya existe una con el mismo código inactiva, la reactiva.
func (r *CurrencyRepo) Seed(ctx context.Context, c *entity.Currency) error {
	query := `
		INSERT INTO moneda (codigo, nombre, simbolo, tasa, activo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (codigo) DO UPDATE SET activo = TRUE
		WHERE NOT moneda.activo`
	if _, err := r.q.Exec(ctx, query, c.Code, c.Name, c.Symbol, c.Rate, c.Active, c.CreatedAt); err != nil {
		return mapWriteError("seed moneda", err)
	}
	return nil
}

func (r *CurrencyRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Currency, error) {
	var c entity.Currency
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Code, &c.Name, &c.Symbol, &c.Rate, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get moneda: %w", err)
	}
	return &c, nil
}
