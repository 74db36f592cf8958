package sales

import "fmt"

// OrderNumberPrefix antecede el consecutivo de la orden.
const OrderNumberPrefix = "F-"

// FormatOrderNumber devuelve el número legible de la orden: F-000042.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", OrderNumberPrefix, seq)
}
