package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem es un producto en inventario. Stock nunca es negativo; cada cambio lleva un InventoryMovement.
type InventoryItem struct {
	ID        int64
	OwnerID   *int64 // persona dueña del inventario (opcional)
	SKU       string
	Name      string
	Category  string
	Stock     int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
