package entity

import "strings"

// Person es la persona natural raíz de todas las identidades (clientes, vendedores).
type Person struct {
	ID         int64
	Name       string
	Surname    string
	NationalID string // RUT
	Email      string
	Phone      string
	Role       string
}

// FullName devuelve "nombre apellido" sin espacios sobrantes.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.Name + " " + p.Surname)
}
