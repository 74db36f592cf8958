package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de stock usado por el libro de movimientos.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryItemRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del ítem hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error)
	// AdjustStock suma delta (positivo o negativo) al stock y sella actualizado_en.
	AdjustStock(ctx context.Context, id int64, delta int, at time.Time) error
}
