package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

type itemRepo struct{ acc access }

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.acc.read(func(s *state) error {
		if it, ok := s.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate: las transacciones ya se serializan en DB.Run, no hace falta bloqueo por fila.
func (r *itemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) AdjustStock(ctx context.Context, id int64, delta int, at time.Time) error {
	return r.acc.write(func(s *state) error {
		it, ok := s.items[id]
		if !ok {
			return fmt.Errorf("%w: producto ID %d", domain.ErrNotFound, id)
		}
		if it.Stock+delta < 0 {
			return fmt.Errorf("%w: stock negativo para el producto %d", domain.ErrConflict, id)
		}
		it.Stock += delta
		it.UpdatedAt = at
		s.items[id] = it
		return nil
	})
}

type movementRepo struct{ acc access }

func (r *movementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	return r.acc.write(func(s *state) error {
		if _, ok := s.items[m.ItemID]; !ok {
			return fmt.Errorf("%w: producto ID %d", domain.ErrNotFound, m.ItemID)
		}
		m.ID = s.nextID("movimientos_inventario")
		s.movements = append(s.movements, *m)
		return nil
	})
}

func (r *movementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementView, error) {
	out := []*entity.MovementView{}
	err := r.acc.read(func(s *state) error {
		for i := len(s.movements) - 1; i >= 0; i-- {
			m := s.movements[i]
			if f.ItemID != nil && m.ItemID != *f.ItemID {
				continue
			}
			v := &entity.MovementView{InventoryMovement: m, ItemName: s.items[m.ItemID].Name}
			if p, ok := s.persons[m.PersonID]; ok {
				v.ActorName = p.FullName()
			}
			out = append(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, f.Limit, f.Offset), nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return list[:0]
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
