package entity

// Roles conocidos en el token de sesión.
const (
	RoleAdmin  = "admin"
	RoleSeller = "vendedor"
)

// Actor es la identidad verificada que ejecuta una operación: la persona autenticada y la sesión que la autoriza.
type Actor struct {
	PersonID  int64
	SessionID string
	Role      string
}

// IsAdmin indica si el actor tiene rol administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
