package entity

import "time"

// TimeBucket es la fila de la dimensión tiempo (fecha, año, mes, día) que exigen facturas y movimientos.
type TimeBucket struct {
	ID    int64
	Date  time.Time
	Year  int
	Month int
	Day   int
}

// NewTimeBucket construye la fila para el instante dado.
func NewTimeBucket(at time.Time) *TimeBucket {
	return &TimeBucket{
		Date:  at,
		Year:  at.Year(),
		Month: int(at.Month()),
		Day:   at.Day(),
	}
}
