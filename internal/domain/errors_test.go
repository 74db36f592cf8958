package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pymes-api/internal/domain"
)

func TestInsufficientStockError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("linea 2: %w", &domain.InsufficientStockError{ItemID: 7, Name: "Café", Requested: 5, Available: 2})

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	var se *domain.InsufficientStockError
	if assert.True(t, errors.As(err, &se)) {
		assert.Equal(t, 5, se.Requested)
		assert.Equal(t, 2, se.Available)
	}
	assert.Contains(t, err.Error(), "Stock: 2, solicitado: 5")
}
