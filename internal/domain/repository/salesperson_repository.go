package repository

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// SalespersonRepository define el puerto de persistencia para vendedores (tabla trabajadores).
type SalespersonRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Salesperson, error)
	// GetByPersonID devuelve el vínculo activo de la persona, o (nil, nil).
	GetByPersonID(ctx context.Context, personID int64) (*entity.Salesperson, error)
	Create(ctx context.Context, s *entity.Salesperson) error
}
