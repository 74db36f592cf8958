// Package sales contiene las reglas puras de una venta: totales, numeración y orden de bloqueo.
package sales

import "github.com/shopspring/decimal"

// DefaultTaxRate es el IVA aplicado al subtotal cuando la configuración no indica otro.
var DefaultTaxRate = decimal.RequireFromString("0.19")

// Line es la parte monetaria de una línea de orden.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals agrupa los montos de la cabecera.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal = cantidad × precio unitario.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ComputeTotals calcula subtotal = Σ(precio × cantidad), impuesto = round2(subtotal × tasa)
// y total = round2(subtotal + impuesto).
func ComputeTotals(lines []Line, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.Quantity, l.UnitPrice))
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax).Round(2),
	}
}
