package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus es el estado de una orden; se persiste como entero (1..5).
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 1
	OrderStatusPreparing OrderStatus = 2
	OrderStatusReady     OrderStatus = 3
	OrderStatusDelivered OrderStatus = 4
	OrderStatusCancelled OrderStatus = 5
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Pendiente",
	OrderStatusPreparing: "Preparando",
	OrderStatusReady:     "Listo",
	OrderStatusDelivered: "Entregado",
	OrderStatusCancelled: "Cancelado",
}

// String devuelve la etiqueta expuesta por la API.
func (s OrderStatus) String() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return "Desconocido"
}

// Valid indica si el estado pertenece al conjunto enumerado.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// ParseOrderStatus convierte una etiqueta ("Pendiente", "Cancelado", ...) en OrderStatus.
func ParseOrderStatus(label string) (OrderStatus, bool) {
	for s, l := range orderStatusLabels {
		if l == label {
			return s, true
		}
	}
	return 0, false
}

// Order es la cabecera de una factura/orden de venta.
type Order struct {
	ID            int64
	Number        string // F-000001
	CustomerID    int64
	SalespersonID int64
	CurrencyID    int64
	TimeBucketID  int64
	SessionID     string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderSummary es la fila de listado de órdenes.
type OrderSummary struct {
	ID               int64
	Number           string
	CustomerPersonID int64
	CustomerName     string
	Status           OrderStatus
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
	CreatedAt        time.Time
}

// OrderDetail es una orden con sus líneas (lista vacía si no tiene).
type OrderDetail struct {
	OrderSummary
	Lines []*OrderLineView
}
