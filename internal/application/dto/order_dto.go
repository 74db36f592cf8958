package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
// Cliente: clienteId (pk_cliente) o clientePersonaId (pk_persona). Vendedor: vendedorId o vendedorPersonaId.
type CreateOrderRequest struct {
	ClienteID         *int64             `json:"clienteId,omitempty"`
	ClientePersonaID  *int64             `json:"clientePersonaId,omitempty"`
	VendedorID        *int64             `json:"vendedorId,omitempty"`
	VendedorPersonaID *int64             `json:"vendedorPersonaId,omitempty"`
	MonedaID          *int64             `json:"monedaId,omitempty"`
	Detalles          []OrderLineRequest `json:"detalles"`
}

// OrderLineRequest línea de la orden (producto, cantidad, precio unitario).
type OrderLineRequest struct {
	ProductoID int64           `json:"productoId"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
}

// OrderCreatedResponse respuesta 201 de POST /api/orders.
type OrderCreatedResponse struct {
	ID      int64  `json:"id"`
	Number  string `json:"nroFactura"`
	Message string `json:"message"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"` // Pendiente | Preparando | Listo | Entregado | Cancelado
}

// OrderSummaryResponse fila de GET /api/orders.
type OrderSummaryResponse struct {
	ID           int64           `json:"id"`
	Number       string          `json:"nroFactura"`
	CustomerID   int64           `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// OrderDetailResponse orden con detalle para GET /api/orders/:id.
type OrderDetailResponse struct {
	OrderSummaryResponse
	Subtotal decimal.Decimal     `json:"subtotal"`
	Tax      decimal.Decimal     `json:"impuesto"`
	Lines    []OrderLineResponse `json:"detalles"`
}

// OrderLineResponse línea de detalle en la respuesta.
type OrderLineResponse struct {
	ProductoID int64           `json:"productoId"`
	Producto   string          `json:"producto"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
	TotalLinea decimal.Decimal `json:"total_linea"`
}
