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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository: cabecera en factura, líneas en orden.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el repositorio. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// NextNumber toma el siguiente valor de order_number_seq. Los valores consumidos por una tx
// revertida no se reutilizan.
func (r *OrderRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	return n, nil
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO factura (
			fk_cliente, fk_vendedor, fk_moneda, fk_tiempo, fk_session, nro_factura,
			subtotal, impuesto, total, estado, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5::text::uuid, $6, $7, $8, $9, $10, $11, $12)
		RETURNING pk_factura`
	err := r.q.QueryRow(ctx, query,
		o.CustomerID, o.SalespersonID, o.CurrencyID, o.TimeBucketID, o.SessionID, o.Number,
		o.Subtotal, o.Tax, o.Total, int16(o.Status), o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de orden %s duplicado", domain.ErrConflict, o.Number)
		}
		return mapWriteError("create factura", err)
	}
	return nil
}

func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO orden (fk_factura, fk_inventario, cantidad, precio_unitario, total_linea)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING pk_orden`
	err := r.q.QueryRow(ctx, query, l.OrderID, l.ItemID, l.Quantity, l.UnitPrice, l.LineTotal).Scan(&l.ID)
	if err != nil {
		return mapWriteError("create orden", err)
	}
	return nil
}

const orderColumns = `pk_factura, nro_factura, fk_cliente, fk_vendedor, fk_moneda, fk_tiempo,
		       fk_session::text, subtotal, impuesto, total, estado, created_at, updated_at`

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM factura WHERE pk_factura = $1`, id)
}

// GetForUpdate bloquea la cabecera: dos cancelaciones concurrentes se serializan aquí.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM factura WHERE pk_factura = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE factura SET estado = $2, updated_at = $3 WHERE pk_factura = $1`, id, int16(status), at)
	if err != nil {
		return mapWriteError("update estado factura", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *OrderRepo) GetLines(ctx context.Context, orderID int64) ([]*entity.OrderLine, error) {
	query := `
		SELECT pk_orden, fk_factura, fk_inventario, cantidad, precio_unitario, total_linea
		FROM orden WHERE fk_factura = $1 ORDER BY pk_orden`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get lineas: %w", err)
	}
	defer rows.Close()

	out := []*entity.OrderLine{}
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan linea: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

const summarySelect = `
		SELECT f.pk_factura, f.nro_factura, c.fk_persona,
		       COALESCE(TRIM(p.nombre || ' ' || COALESCE(p.apellido, '')), ''),
		       f.estado, f.subtotal, f.impuesto, f.total, f.created_at
		FROM factura f
		JOIN cliente c ON c.pk_cliente = f.fk_cliente
		JOIN personas p ON p.pk_persona = c.fk_persona`

// ListSummaries devuelve todas las órdenes de la más reciente a la más antigua.
func (r *OrderRepo) ListSummaries(ctx context.Context) ([]*entity.OrderSummary, error) {
	rows, err := r.q.Query(ctx, summarySelect+` ORDER BY f.created_at DESC, f.pk_factura DESC`)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()

	out := []*entity.OrderSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *OrderRepo) GetSummary(ctx context.Context, id int64) (*entity.OrderSummary, error) {
	s, err := scanSummary(r.q.QueryRow(ctx, summarySelect+` WHERE f.pk_factura = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *OrderRepo) GetLineViews(ctx context.Context, orderID int64) ([]*entity.OrderLineView, error) {
	query := `
		SELECT o.pk_orden, o.fk_factura, o.fk_inventario, o.cantidad, o.precio_unitario, o.total_linea, i.producto
		FROM orden o
		JOIN inventario i ON i.pk_inventario = o.fk_inventario
		WHERE o.fk_factura = $1
		ORDER BY o.pk_orden`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get detalle: %w", err)
	}
	defer rows.Close()

	out := []*entity.OrderLineView{}
	for rows.Next() {
		var v entity.OrderLineView
		if err := rows.Scan(&v.ID, &v.OrderID, &v.ItemID, &v.Quantity, &v.UnitPrice, &v.LineTotal, &v.ItemName); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *OrderRepo) getOne(ctx context.Context, query string, id int64) (*entity.Order, error) {
	var (
		o      entity.Order
		status int16
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.SalespersonID, &o.CurrencyID, &o.TimeBucketID,
		&o.SessionID, &o.Subtotal, &o.Tax, &o.Total, &status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

func scanSummary(row pgx.Row) (*entity.OrderSummary, error) {
	var (
		s      entity.OrderSummary
		status int16
	)
	if err := row.Scan(
		&s.ID, &s.Number, &s.CustomerPersonID, &s.CustomerName,
		&status, &s.Subtotal, &s.Tax, &s.Total, &s.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan factura: %w", err)
	}
	s.Status = entity.OrderStatus(status)
	return &s, nil
}
