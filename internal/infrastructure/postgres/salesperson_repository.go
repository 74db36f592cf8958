package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

var _ repository.SalespersonRepository = (*SalespersonRepo)(nil)

// SalespersonRepo implementación de SalespersonRepository sobre la tabla trabajadores.
type SalespersonRepo struct {
	q Querier
}

// NewSalespersonRepository construye el repositorio. Pasar pool o tx (Querier).
func NewSalespersonRepository(q Querier) *SalespersonRepo {
	return &SalespersonRepo{q: q}
}

const salespersonColumns = `pk_trabajadores, fk_persona, COALESCE(cargo, ''), activo, fecha_ingreso`

func (r *SalespersonRepo) GetByID(ctx context.Context, id int64) (*entity.Salesperson, error) {
	query := `SELECT ` + salespersonColumns + ` FROM trabajadores WHERE pk_trabajadores = $1`
	return r.getOne(ctx, query, id)
}

// GetByPersonID devuelve el vínculo activo de menor ID.
func (r *SalespersonRepo) GetByPersonID(ctx context.Context, personID int64) (*entity.Salesperson, error) {
	query := `
		SELECT ` + salespersonColumns + `
		FROM trabajadores WHERE fk_persona = $1 AND activo
		ORDER BY pk_trabajadores LIMIT 1`
	return r.getOne(ctx, query, personID)
}

// Create inserta el vínculo activo. Ante una alta concurrente de la misma persona se reutiliza la fila existente.
func (r *SalespersonRepo) Create(ctx context.Context, s *entity.Salesperson) error {
	query := `
		INSERT INTO trabajadores (fk_persona, cargo, fecha_ingreso, activo)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (fk_persona) WHERE activo DO NOTHING
		RETURNING pk_trabajadores`
	err := r.q.QueryRow(ctx, query, s.PersonID, s.Title, s.HiredAt, s.Active).Scan(&s.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, gerr := r.GetByPersonID(ctx, s.PersonID)
		if gerr != nil {
			return gerr
		}
		if existing == nil {
			return fmt.Errorf("create trabajador: vínculo de la persona %d no visible", s.PersonID)
		}
		*s = *existing
		return nil
	}
	if err != nil {
		return mapWriteError("create trabajador", err)
	}
	return nil
}

func (r *SalespersonRepo) getOne(ctx context.Context, query string, arg int64) (*entity.Salesperson, error) {
	var s entity.Salesperson
	if err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.PersonID, &s.Title, &s.Active, &s.HiredAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trabajador: %w", err)
	}
	return &s, nil
}
