package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre la tabla cliente.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el repositorio. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT pk_cliente, fk_persona FROM cliente WHERE pk_cliente = $1`, id)
}

func (r *CustomerRepo) GetByPersonID(ctx context.Context, personID int64) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT pk_cliente, fk_persona FROM cliente WHERE fk_persona = $1`, personID)
}

// Create inserta el vínculo. Si otra transacción lo creó en paralelo, se reutiliza su fila.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO cliente (fk_persona) VALUES ($1)
		ON CONFLICT (fk_persona) DO NOTHING
		RETURNING pk_cliente`
	err := r.q.QueryRow(ctx, query, c.PersonID).Scan(&c.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, gerr := r.GetByPersonID(ctx, c.PersonID)
		if gerr != nil {
			return gerr
		}
		if existing == nil {
			return fmt.Errorf("create cliente: vínculo de la persona %d no visible", c.PersonID)
		}
		c.ID = existing.ID
		return nil
	}
	if err != nil {
		return mapWriteError("create cliente", err)
	}
	return nil
}

func (r *CustomerRepo) getOne(ctx context.Context, query string, arg int64) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.PersonID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}
