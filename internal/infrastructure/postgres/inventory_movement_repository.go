package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación de InventoryMovementRepository (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create registra un movimiento. Solo inserción: el libro es inmutable.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO movimientos_inventario
			(fk_inventario, tipo, cantidad, motivo, fk_persona, fk_tiempo, fk_session, creado_en)
		VALUES ($1, $2, $3, $4, NULLIF($5::bigint, 0), NULLIF($6::bigint, 0), NULLIF($7::text, '')::uuid, $8)
		RETURNING pk_movimiento`
	err := r.q.QueryRow(ctx, query,
		m.ItemID, m.Type, m.Quantity, m.Reason, m.PersonID, m.TimeBucketID, m.SessionID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return mapWriteError("create movimiento", err)
	}
	return nil
}

// List devuelve movimientos del más reciente al más antiguo con producto y actor.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementView, error) {
	query := `
		SELECT m.pk_movimiento, m.fk_inventario, m.tipo, m.cantidad, COALESCE(m.motivo, ''),
		       COALESCE(m.fk_persona, 0), COALESCE(m.fk_tiempo, 0), COALESCE(m.fk_session::text, ''), m.creado_en,
		       i.producto, COALESCE(TRIM(p.nombre || ' ' || COALESCE(p.apellido, '')), '')
		FROM movimientos_inventario m
		JOIN inventario i ON i.pk_inventario = m.fk_inventario
		LEFT JOIN personas p ON p.pk_persona = m.fk_persona
		WHERE ($1::bigint IS NULL OR m.fk_inventario = $1)
		ORDER BY m.creado_en DESC, m.pk_movimiento DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.ItemID, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	out := []*entity.MovementView{}
	for rows.Next() {
		var v entity.MovementView
		if err := rows.Scan(
			&v.ID, &v.ItemID, &v.Type, &v.Quantity, &v.Reason,
			&v.PersonID, &v.TimeBucketID, &v.SessionID, &v.CreatedAt,
			&v.ItemName, &v.ActorName,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
