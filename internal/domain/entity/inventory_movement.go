package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeOut = "SALIDA"
	MovementTypeIn  = "ENTRADA"
)

// Motivos registrados por el flujo de órdenes.
const (
	ReasonSale         = "Venta de productos"
	ReasonCancellation = "Cancelación de orden"
)

// InventoryMovement es una fila inmutable del libro de movimientos.
// Quantity siempre es positiva; Type indica la dirección.
type InventoryMovement struct {
	ID           int64
	ItemID       int64
	Type         string
	Quantity     int
	Reason       string
	PersonID     int64
	TimeBucketID int64
	SessionID    string
	CreatedAt    time.Time
}

// MovementView es un movimiento con el nombre del producto y del actor, para auditoría.
type MovementView struct {
	InventoryMovement
	ItemName  string
	ActorName string
}
