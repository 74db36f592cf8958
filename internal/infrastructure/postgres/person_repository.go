package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

var _ repository.PersonRepository = (*PersonRepo)(nil)

// PersonRepo lectura de la tabla personas.
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el repositorio. Pasar pool o tx (Querier).
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

// GetByID devuelve la persona o (nil, nil) si no existe.
func (r *PersonRepo) GetByID(ctx context.Context, id int64) (*entity.Person, error) {
	query := `
		SELECT pk_persona, nombre, COALESCE(apellido, ''), COALESCE(rut, ''),
		       COALESCE(correo, ''), COALESCE(numero_telefono, ''), COALESCE(rol, '')
		FROM personas WHERE pk_persona = $1`
	var p entity.Person
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Surname, &p.NationalID, &p.Email, &p.Phone, &p.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get persona: %w", err)
	}
	return &p, nil
}
