package repository

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// PersonRepository lectura de personas. El alta y edición pertenecen al módulo de usuarios.
type PersonRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Person, error)
}
