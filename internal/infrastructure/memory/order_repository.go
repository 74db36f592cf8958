package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

type orderRepo struct{ acc access }

func (r *orderRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	err := r.acc.write(func(s *state) error {
		s.orderNumber++
		n = s.orderNumber
		return nil
	})
	return n, err
}

func (r *orderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.acc.write(func(s *state) error {
		for _, existing := range s.orders {
			if existing.Number == o.Number {
				return fmt.Errorf("%w: número de orden %s duplicado", domain.ErrConflict, o.Number)
			}
		}
		if _, ok := s.customers[o.CustomerID]; !ok {
			return fmt.Errorf("%w: cliente %d", domain.ErrNotFound, o.CustomerID)
		}
		if _, ok := s.salespeople[o.SalespersonID]; !ok {
			return fmt.Errorf("%w: vendedor %d", domain.ErrNotFound, o.SalespersonID)
		}
		o.ID = s.nextID("factura")
		s.orders[o.ID] = *o
		return nil
	})
}

func (r *orderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	return r.acc.write(func(s *state) error {
		if _, ok := s.orders[l.OrderID]; !ok {
			return fmt.Errorf("%w: orden %d", domain.ErrNotFound, l.OrderID)
		}
		l.ID = s.nextID("orden")
		s.lines = append(s.lines, *l)
		return nil
	})
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	var out *entity.Order
	err := r.acc.read(func(s *state) error {
		if o, ok := s.orders[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, at time.Time) error {
	return r.acc.write(func(s *state) error {
		o, ok := s.orders[id]
		if !ok {
			return fmt.Errorf("%w: orden %d", domain.ErrNotFound, id)
		}
		o.Status = status
		o.UpdatedAt = at
		s.orders[id] = o
		return nil
	})
}

func (r *orderRepo) GetLines(ctx context.Context, orderID int64) ([]*entity.OrderLine, error) {
	out := []*entity.OrderLine{}
	err := r.acc.read(func(s *state) error {
		for _, l := range s.lines {
			if l.OrderID == orderID {
				l := l
				out = append(out, &l)
			}
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) ListSummaries(ctx context.Context) ([]*entity.OrderSummary, error) {
	out := []*entity.OrderSummary{}
	err := r.acc.read(func(s *state) error {
		for _, o := range s.orders {
			out = append(out, summarize(s, o))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, err
}

func (r *orderRepo) GetSummary(ctx context.Context, id int64) (*entity.OrderSummary, error) {
	var out *entity.OrderSummary
	err := r.acc.read(func(s *state) error {
		if o, ok := s.orders[id]; ok {
			out = summarize(s, o)
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) GetLineViews(ctx context.Context, orderID int64) ([]*entity.OrderLineView, error) {
	out := []*entity.OrderLineView{}
	err := r.acc.read(func(s *state) error {
		for _, l := range s.lines {
			if l.OrderID == orderID {
				out = append(out, &entity.OrderLineView{OrderLine: l, ItemName: s.items[l.ItemID].Name})
			}
		}
		return nil
	})
	return out, err
}

func summarize(s *state, o entity.Order) *entity.OrderSummary {
	sum := &entity.OrderSummary{
		ID:        o.ID,
		Number:    o.Number,
		Status:    o.Status,
		Subtotal:  o.Subtotal,
		Tax:       o.Tax,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
	if c, ok := s.customers[o.CustomerID]; ok {
		sum.CustomerPersonID = c.PersonID
		if p, ok := s.persons[c.PersonID]; ok {
			sum.CustomerName = p.FullName()
		}
	}
	return sum
}
