package orders

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

// Query lecturas de órdenes. Nunca abre transacciones de escritura.
type Query struct {
	orders repository.OrderRepository
}

// NewQuery construye el servicio de consulta sobre el repositorio del pool.
func NewQuery(orders repository.OrderRepository) *Query {
	return &Query{orders: orders}
}

// List devuelve las órdenes de la más reciente a la más antigua.
func (q *Query) List(ctx context.Context) ([]*entity.OrderSummary, error) {
	list, err := q.orders.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.OrderSummary{}
	}
	return list, nil
}

// Get devuelve la orden con sus líneas. Cabecera y líneas se leen en paralelo.
func (q *Query) Get(ctx context.Context, id int64) (*entity.OrderDetail, error) {
	var (
		summary *entity.OrderSummary
		lines   []*entity.OrderLineView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := q.orders.GetSummary(gctx, id)
		summary = s
		return err
	})
	g.Go(func() error {
		l, err := q.orders.GetLineViews(gctx, id)
		lines = l
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, fmt.Errorf("%w: orden %d", domain.ErrNotFound, id)
	}
	if lines == nil {
		lines = []*entity.OrderLineView{}
	}
	return &entity.OrderDetail{OrderSummary: *summary, Lines: lines}, nil
}
