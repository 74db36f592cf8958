package sales

import (
	"fmt"

	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// CheckTransition valida el paso de from a to.
// Entre Pendiente, Preparando, Listo y Entregado se permite cualquier cambio explícito;
// Cancelado es terminal y solo se alcanza una vez.
func CheckTransition(from, to entity.OrderStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: estado %d", domain.ErrInvalidInput, to)
	}
	if from == entity.OrderStatusCancelled {
		if to == entity.OrderStatusCancelled {
			return fmt.Errorf("%w: la orden ya está cancelada", domain.ErrInvalidState)
		}
		return fmt.Errorf("%w: la orden está cancelada", domain.ErrInvalidState)
	}
	return nil
}
