package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

// Entry describe un cambio de stock y su trazabilidad (quién, cuándo, bajo qué sesión, por qué).
type Entry struct {
	ItemID       int64
	Quantity     int
	PersonID     int64
	TimeBucketID int64
	SessionID    string
	Reason       string
}

// Ledger aplica cambios de stock y agrega el movimiento correspondiente.
// Debe usarse con los repositorios de la transacción del llamador: si retorna error,
// el llamador hace rollback de todo.
type Ledger struct {
	now func() time.Time
}

// NewLedger construye el libro de movimientos.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// ReserveAndDebit bloquea la fila del ítem (SELECT FOR UPDATE), valida disponibilidad,
// descuenta la cantidad y registra una SALIDA.
func (l *Ledger) ReserveAndDebit(ctx context.Context, s repository.Store, e Entry) error {
	item, err := l.lock(ctx, s, e)
	if err != nil {
		return err
	}
	if e.Quantity > item.Stock {
		return &domain.InsufficientStockError{
			ItemID:    item.ID,
			Name:      item.Name,
			Requested: e.Quantity,
			Available: item.Stock,
		}
	}
	return l.apply(ctx, s, e, -e.Quantity, entity.MovementTypeOut)
}

// CreditBack bloquea la fila del ítem, devuelve la cantidad al stock y registra una ENTRADA.
func (l *Ledger) CreditBack(ctx context.Context, s repository.Store, e Entry) error {
	if _, err := l.lock(ctx, s, e); err != nil {
		return err
	}
	return l.apply(ctx, s, e, e.Quantity, entity.MovementTypeIn)
}

func (l *Ledger) lock(ctx context.Context, s repository.Store, e Entry) (*entity.InventoryItem, error) {
	if e.Quantity <= 0 {
		return nil, fmt.Errorf("%w: cantidad %d para el producto %d", domain.ErrInvalidInput, e.Quantity, e.ItemID)
	}
	item, err := s.Items.GetForUpdate(ctx, e.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: producto ID %d", domain.ErrNotFound, e.ItemID)
	}
	return item, nil
}

func (l *Ledger) apply(ctx context.Context, s repository.Store, e Entry, delta int, movementType string) error {
	now := l.now()
	if err := s.Items.AdjustStock(ctx, e.ItemID, delta, now); err != nil {
		return err
	}
	return s.Movements.Create(ctx, &entity.InventoryMovement{
		ItemID:       e.ItemID,
		Type:         movementType,
		Quantity:     e.Quantity,
		Reason:       e.Reason,
		PersonID:     e.PersonID,
		TimeBucketID: e.TimeBucketID,
		SessionID:    e.SessionID,
		CreatedAt:    now,
	})
}
