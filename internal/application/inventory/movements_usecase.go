package inventory

import (
	"context"

	"github.com/jhoicas/pymes-api/internal/application/dto"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

// MovementsUseCase consulta de auditoría del libro de movimientos (solo lectura).
type MovementsUseCase struct {
	repo repository.InventoryMovementRepository
}

// NewMovementsUseCase construye el caso de uso.
func NewMovementsUseCase(repo repository.InventoryMovementRepository) *MovementsUseCase {
	return &MovementsUseCase{repo: repo}
}

// List devuelve los movimientos del más reciente al más antiguo, opcionalmente de un solo producto.
func (uc *MovementsUseCase) List(ctx context.Context, itemID *int64, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.MovementFilter{ItemID: itemID, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			ItemID:    m.ItemID,
			ItemName:  m.ItemName,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			Actor:     m.ActorName,
			SessionID: m.SessionID,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
