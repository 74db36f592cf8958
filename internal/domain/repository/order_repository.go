package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes (factura) y sus líneas (orden).
type OrderRepository interface {
	// NextNumber reserva el siguiente consecutivo de numeración.
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, at time.Time) error
	GetLines(ctx context.Context, orderID int64) ([]*entity.OrderLine, error)

	// Lecturas para listados y detalle.
	ListSummaries(ctx context.Context) ([]*entity.OrderSummary, error)
	GetSummary(ctx context.Context, id int64) (*entity.OrderSummary, error)
	GetLineViews(ctx context.Context, orderID int64) ([]*entity.OrderLineView, error)
}
