package repository

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes (tabla cliente).
// Los Get* devuelven (nil, nil) cuando la fila no existe.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	GetByPersonID(ctx context.Context, personID int64) (*entity.Customer, error)
	// Create inserta el cliente y asigna customer.ID.
	Create(ctx context.Context, customer *entity.Customer) error
}
