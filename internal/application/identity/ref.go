package identity

import (
	"fmt"

	"github.com/jhoicas/pymes-api/internal/domain"
)

// RefKind indica cómo interpretar el ID de una referencia a cliente o vendedor.
type RefKind int

const (
	RefNone     RefKind = iota
	ByRoleID            // ID del registro de rol (pk_cliente / pk_trabajadores)
	ByPersonID          // ID de la persona (pk_persona)
)

// Ref es una referencia explícita a un actor: por ID de rol o por ID de persona, nunca ambos.
type Ref struct {
	Kind RefKind
	ID   int64
}

// RoleRef referencia por ID de rol.
func RoleRef(id int64) Ref { return Ref{Kind: ByRoleID, ID: id} }

// PersonRef referencia por ID de persona.
func PersonRef(id int64) Ref { return Ref{Kind: ByPersonID, ID: id} }

// RefFrom construye la referencia a partir de los dos campos opcionales del request.
// Ambos informados es ambiguo y devuelve ErrInvalidInput; ninguno devuelve Ref{} (RefNone).
func RefFrom(roleID, personID *int64) (Ref, error) {
	switch {
	case roleID != nil && personID != nil:
		return Ref{}, fmt.Errorf("%w: indique el ID de rol o el ID de persona, no ambos", domain.ErrInvalidInput)
	case roleID != nil:
		if *roleID <= 0 {
			return Ref{}, fmt.Errorf("%w: ID de rol %d", domain.ErrInvalidInput, *roleID)
		}
		return RoleRef(*roleID), nil
	case personID != nil:
		if *personID <= 0 {
			return Ref{}, fmt.Errorf("%w: ID de persona %d", domain.ErrInvalidInput, *personID)
		}
		return PersonRef(*personID), nil
	}
	return Ref{}, nil
}
