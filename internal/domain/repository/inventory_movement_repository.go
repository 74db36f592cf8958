package repository

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// MovementFilter filtros del listado de auditoría. ItemID nil = todos los productos.
type MovementFilter struct {
	ItemID *int64
	Limit  int
	Offset int
}

// InventoryMovementRepository define el puerto del libro de movimientos (solo inserción y lectura).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// List devuelve los movimientos del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*entity.MovementView, error)
}
