package entity

import "time"

// DefaultSalespersonTitle es el cargo asignado al crear un vendedor de forma perezosa.
const DefaultSalespersonTitle = "vendedor"

// Salesperson vincula una persona con la capacidad de vendedor (tabla trabajadores).
type Salesperson struct {
	ID       int64
	PersonID int64
	Title    string
	Active   bool
	HiredAt  time.Time
}
