package dto

import "time"

// MovementResponse fila de auditoría de GET /api/inventory/movements.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"productoId"`
	ItemName  string    `json:"producto"`
	Type      string    `json:"tipo"` // SALIDA | ENTRADA
	Quantity  int       `json:"cantidad"`
	Reason    string    `json:"motivo"`
	Actor     string    `json:"actor"`
	SessionID string    `json:"sessionId,omitempty"`
	CreatedAt time.Time `json:"creado_en"`
}
