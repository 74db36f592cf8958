package currency_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pymes-api/internal/application/currency"
	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/infrastructure/memory"
)

// Caso 1: con la tabla vacía se siembra una sola moneda y se reutiliza.
func TestResolve_SiembraUnaVez(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	repo := db.Store().Currencies

	first, err := currency.Resolve(ctx, repo, nil)
	require.NoError(t, err)
	second, err := currency.Resolve(ctx, repo, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	_, _, _, _, currencies := db.Counts()
	assert.Equal(t, 1, currencies)

	c, err := repo.GetByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "LOCAL", c.Code)
	assert.True(t, c.Rate.Equal(decimal.NewFromInt(1)))
}

// Caso 2: la moneda por defecto es la activa de menor ID.
func TestResolve_PorDefectoActivaMenorID(t *testing.T) {
	db := memory.New()
	db.AddCurrency(entity.Currency{Code: "USD", Active: false, Rate: decimal.NewFromInt(900), CreatedAt: time.Now()})
	clp := db.AddCurrency(entity.Currency{Code: "CLP", Active: true, Rate: decimal.NewFromInt(1), CreatedAt: time.Now()})
	db.AddCurrency(entity.Currency{Code: "EUR", Active: true, Rate: decimal.NewFromInt(1000), CreatedAt: time.Now()})

	id, err := currency.Resolve(context.Background(), db.Store().Currencies, nil)
	require.NoError(t, err)
	assert.Equal(t, clp, id)
}

// Caso 3: con ID explícito se exige que exista.
func TestResolve_Explicita(t *testing.T) {
	db := memory.New()
	usd := db.AddCurrency(entity.Currency{Code: "USD", Active: true})
	repo := db.Store().Currencies

	id, err := currency.Resolve(context.Background(), repo, &usd)
	require.NoError(t, err)
	assert.Equal(t, usd, id)

	missing := usd + 1
	_, err = currency.Resolve(context.Background(), repo, &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Caso 4: solo existe LOCAL inactiva → se reactiva en lugar de fallar.
func TestResolve_ReactivaLocalInactiva(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	local := db.AddCurrency(entity.Currency{Code: "LOCAL", Name: "Moneda Local", Active: false, Rate: decimal.NewFromInt(1), CreatedAt: time.Now()})
	repo := db.Store().Currencies

	id, err := currency.Resolve(ctx, repo, nil)
	require.NoError(t, err)
	assert.Equal(t, local, id)

	_, _, _, _, currencies := db.Counts()
	assert.Equal(t, 1, currencies, "no se inserta una segunda moneda LOCAL")
	c, err := repo.GetByID(ctx, local)
	require.NoError(t, err)
	assert.True(t, c.Active)
}
