package entity

// Customer vincula una persona con la capacidad de comprador. Máximo uno por persona.
type Customer struct {
	ID       int64
	PersonID int64
}
