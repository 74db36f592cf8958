package entity

import "github.com/shopspring/decimal"

// OrderLine es una línea de la orden: producto, cantidad y precio al momento de la venta.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ItemID    int64
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal // Quantity * UnitPrice
}

// OrderLineView agrega el nombre del producto a la línea.
type OrderLineView struct {
	OrderLine
	ItemName string
}
