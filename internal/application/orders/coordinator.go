// Package orders coordina la creación y cancelación de órdenes contra el inventario compartido
// y expone las lecturas de órdenes.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pymes-api/internal/application/currency"
	"github.com/jhoicas/pymes-api/internal/application/identity"
	"github.com/jhoicas/pymes-api/internal/application/inventory"
	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
	"github.com/jhoicas/pymes-api/internal/domain/sales"
	"github.com/jhoicas/pymes-api/pkg/logger"
)

// Config parámetros del coordinador.
type Config struct {
	TaxRate *decimal.Decimal // nil = sales.DefaultTaxRate; 0 es una tasa válida (exento)
}

// LineInput línea pedida por el llamador.
type LineInput struct {
	ItemID    int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateInput datos de una orden nueva. CurrencyID nil = moneda por defecto.
type CreateInput struct {
	Customer    identity.Ref
	Salesperson identity.Ref
	CurrencyID  *int64
	Lines       []LineInput
}

// Coordinator crea, cambia de estado y cancela órdenes. Cada operación es una sola transacción:
// resolución de actores, bloqueo y descuento de stock, cabecera, líneas y movimientos.
type Coordinator struct {
	tx       TxRunner
	query    *Query
	identity *identity.Resolver
	ledger   *inventory.Ledger
	taxRate  decimal.Decimal
	log      *logger.Logger
	now      func() time.Time
}

// NewCoordinator construye el coordinador.
func NewCoordinator(
	tx TxRunner,
	query *Query,
	resolver *identity.Resolver,
	ledger *inventory.Ledger,
	cfg Config,
	log *logger.Logger,
) *Coordinator {
	rate := sales.DefaultTaxRate
	if cfg.TaxRate != nil {
		rate = *cfg.TaxRate
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{
		tx:       tx,
		query:    query,
		identity: resolver,
		ledger:   ledger,
		taxRate:  rate,
		log:      log.Component("orders"),
		now:      time.Now,
	}
}

// Create valida la orden, descuenta el stock de cada línea y persiste cabecera y líneas.
// Cualquier error (stock insuficiente, producto inexistente, actor inválido) revierte todo.
func (c *Coordinator) Create(ctx context.Context, actor entity.Actor, in CreateInput) (*entity.Order, error) {
	if actor.SessionID == "" {
		return nil, fmt.Errorf("%w: sesión requerida", domain.ErrUnauthorized)
	}
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}

	var order *entity.Order
	err := c.tx.Run(ctx, func(s repository.Store) error {
		customerID, err := c.identity.ResolveCustomer(ctx, s, in.Customer)
		if err != nil {
			return err
		}
		salespersonID, err := c.identity.ResolveSalesperson(ctx, s, actor, in.Salesperson)
		if err != nil {
			return err
		}
		sellerPersonID, err := c.identity.PersonIDForSalesperson(ctx, s, salespersonID)
		if err != nil {
			return err
		}
		currencyID, err := currency.Resolve(ctx, s.Currencies, in.CurrencyID)
		if err != nil {
			return err
		}

		now := c.now()
		bucket := entity.NewTimeBucket(now)
		if err := s.TimeBuckets.Create(ctx, bucket); err != nil {
			return err
		}

		// Bloqueo y descuento en orden de ítem ascendente.
		itemIDs := make([]int64, len(in.Lines))
		for i, l := range in.Lines {
			itemIDs[i] = l.ItemID
		}
		for _, i := range sales.LockOrder(itemIDs) {
			l := in.Lines[i]
			if err := c.ledger.ReserveAndDebit(ctx, s, inventory.Entry{
				ItemID:       l.ItemID,
				Quantity:     l.Quantity,
				PersonID:     sellerPersonID,
				TimeBucketID: bucket.ID,
				SessionID:    actor.SessionID,
				Reason:       entity.ReasonSale,
			}); err != nil {
				return err
			}
		}

		priced := make([]sales.Line, len(in.Lines))
		for i, l := range in.Lines {
			priced[i] = sales.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		}
		totals := sales.ComputeTotals(priced, c.taxRate)

		seq, err := s.Orders.NextNumber(ctx)
		if err != nil {
			return err
		}
		order = &entity.Order{
			Number:        sales.FormatOrderNumber(seq),
			CustomerID:    customerID,
			SalespersonID: salespersonID,
			CurrencyID:    currencyID,
			TimeBucketID:  bucket.ID,
			SessionID:     actor.SessionID,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
			Status:        entity.OrderStatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.Orders.Create(ctx, order); err != nil {
			return err
		}
		for _, l := range in.Lines {
			if err := s.Orders.CreateLine(ctx, &entity.OrderLine{
				OrderID:   order.ID,
				ItemID:    l.ItemID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				LineTotal: sales.LineTotal(l.Quantity, l.UnitPrice),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Int64("order_id", order.ID).
		Str("number", order.Number).
		Str("total", order.Total.StringFixed(2)).
		Int("lines", len(in.Lines)).
		Msg("orden creada")
	return order, nil
}

// UpdateStatus cambia el estado de la orden. Cancelado delega en Cancel (devuelve stock);
// el resto no toca inventario.
func (c *Coordinator) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) (*entity.OrderDetail, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado inválido", domain.ErrInvalidInput)
	}
	if status == entity.OrderStatusCancelled {
		return c.Cancel(ctx, id)
	}

	err := c.tx.Run(ctx, func(s repository.Store) error {
		o, err := s.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: orden %d", domain.ErrNotFound, id)
		}
		if err := sales.CheckTransition(o.Status, status); err != nil {
			return err
		}
		return s.Orders.UpdateStatus(ctx, id, status, c.now())
	})
	if err != nil {
		return nil, err
	}
	return c.query.Get(ctx, id)
}

// Cancel devuelve al stock cada línea de la orden (ENTRADA a nombre del vendedor original y bajo
// la sesión que la autorizó) y marca la orden como Cancelado. Una orden se cancela una sola vez.
func (c *Coordinator) Cancel(ctx context.Context, id int64) (*entity.OrderDetail, error) {
	restored := 0
	err := c.tx.Run(ctx, func(s repository.Store) error {
		o, err := s.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: orden %d", domain.ErrNotFound, id)
		}
		if err := sales.CheckTransition(o.Status, entity.OrderStatusCancelled); err != nil {
			return err
		}
		sellerPersonID, err := c.identity.PersonIDForSalesperson(ctx, s, o.SalespersonID)
		if err != nil {
			return err
		}

		now := c.now()
		bucket := entity.NewTimeBucket(now)
		if err := s.TimeBuckets.Create(ctx, bucket); err != nil {
			return err
		}

		lines, err := s.Orders.GetLines(ctx, id)
		if err != nil {
			return err
		}
		itemIDs := make([]int64, len(lines))
		for i, l := range lines {
			itemIDs[i] = l.ItemID
		}
		for _, i := range sales.LockOrder(itemIDs) {
			l := lines[i]
			if err := c.ledger.CreditBack(ctx, s, inventory.Entry{
				ItemID:       l.ItemID,
				Quantity:     l.Quantity,
				PersonID:     sellerPersonID,
				TimeBucketID: bucket.ID,
				SessionID:    o.SessionID,
				Reason:       entity.ReasonCancellation,
			}); err != nil {
				return err
			}
		}
		restored = len(lines)
		return s.Orders.UpdateStatus(ctx, id, entity.OrderStatusCancelled, now)
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Int64("order_id", id).Int("lines_restored", restored).Msg("orden cancelada")
	return c.query.Get(ctx, id)
}

func validateLines(lines []LineInput) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: la orden debe tener al menos un producto", domain.ErrInvalidInput)
	}
	for i, l := range lines {
		if l.ItemID <= 0 {
			return fmt.Errorf("%w: línea %d sin productoId", domain.ErrInvalidInput, i+1)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: línea %d con cantidad %d", domain.ErrInvalidInput, i+1, l.Quantity)
		}
		if l.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: línea %d con precio negativo", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}
