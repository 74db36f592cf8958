package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre la tabla inventario (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `pk_inventario, fk_id_persona, COALESCE(sku, ''), producto, COALESCE(categoria, ''),
		       stock, precio_unitario, creado_en, actualizado_en`

// GetByID obtiene el producto sin bloquear la fila.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventario WHERE pk_inventario = $1`
	return r.getOne(ctx, query, id)
}

// GetForUpdate obtiene el producto y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventario WHERE pk_inventario = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

// AdjustStock suma delta al stock. El CHECK (stock >= 0) de la tabla rechaza cualquier negativo.
func (r *InventoryItemRepo) AdjustStock(ctx context.Context, id int64, delta int, at time.Time) error {
	query := `UPDATE inventario SET stock = stock + $2, actualizado_en = $3 WHERE pk_inventario = $1`
	tag, err := r.q.Exec(ctx, query, id, delta, at)
	if err != nil {
		return mapWriteError("adjust stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto ID %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *InventoryItemRepo) getOne(ctx context.Context, query string, id int64) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.OwnerID, &it.SKU, &it.Name, &it.Category,
		&it.Stock, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return &it, nil
}
