// Package identity resuelve referencias a clientes y vendedores en sus registros canónicos,
// creando el vínculo de rol cuando la persona aún no lo tiene.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

// Policy decide quién puede convertir a una persona en vendedor al vuelo.
type Policy struct {
	// AllowSalespersonBootstrap permite a cualquier sesión crear el vínculo de vendedor de otra persona.
	AllowSalespersonBootstrap bool
}

// Resolver resuelve referencias usando los repositorios de la transacción del llamador.
type Resolver struct {
	policy Policy
	now    func() time.Time
}

// NewResolver construye el resolver.
func NewResolver(policy Policy) *Resolver {
	return &Resolver{policy: policy, now: time.Now}
}

// ResolveCustomer devuelve el pk_cliente. Por ID de rol verifica que exista;
// por ID de persona busca el vínculo y lo crea si falta.
func (r *Resolver) ResolveCustomer(ctx context.Context, s repository.Store, ref Ref) (int64, error) {
	switch ref.Kind {
	case ByRoleID:
		c, err := s.Customers.GetByID(ctx, ref.ID)
		if err != nil {
			return 0, err
		}
		if c == nil {
			return 0, fmt.Errorf("%w: cliente %d", domain.ErrNotFound, ref.ID)
		}
		return c.ID, nil
	case ByPersonID:
		existing, err := s.Customers.GetByPersonID(ctx, ref.ID)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			return existing.ID, nil
		}
		if err := requirePerson(ctx, s, ref.ID); err != nil {
			return 0, err
		}
		c := &entity.Customer{PersonID: ref.ID}
		if err := s.Customers.Create(ctx, c); err != nil {
			return 0, err
		}
		return c.ID, nil
	}
	return 0, fmt.Errorf("%w: clienteId o clientePersonaId es requerido", domain.ErrInvalidInput)
}

// ResolveSalesperson devuelve el pk_trabajadores. Crear el vínculo para una persona requiere
// que el actor sea esa persona, sea admin, o que la política lo permita.
func (r *Resolver) ResolveSalesperson(ctx context.Context, s repository.Store, actor entity.Actor, ref Ref) (int64, error) {
	switch ref.Kind {
	case ByRoleID:
		sp, err := s.Salespeople.GetByID(ctx, ref.ID)
		if err != nil {
			return 0, err
		}
		if sp == nil {
			return 0, fmt.Errorf("%w: vendedor %d", domain.ErrNotFound, ref.ID)
		}
		return sp.ID, nil
	case ByPersonID:
		existing, err := s.Salespeople.GetByPersonID(ctx, ref.ID)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			return existing.ID, nil
		}
		if err := requirePerson(ctx, s, ref.ID); err != nil {
			return 0, err
		}
		if !r.canBootstrap(actor, ref.ID) {
			return 0, fmt.Errorf("%w: la sesión no puede registrar a la persona %d como vendedor", domain.ErrForbidden, ref.ID)
		}
		sp := &entity.Salesperson{
			PersonID: ref.ID,
			Title:    entity.DefaultSalespersonTitle,
			Active:   true,
			HiredAt:  r.now(),
		}
		if err := s.Salespeople.Create(ctx, sp); err != nil {
			return 0, err
		}
		return sp.ID, nil
	}
	return 0, fmt.Errorf("%w: vendedorId o vendedorPersonaId es requerido", domain.ErrInvalidInput)
}

// PersonIDForSalesperson devuelve el pk_persona del vendedor.
func (r *Resolver) PersonIDForSalesperson(ctx context.Context, s repository.Store, salespersonID int64) (int64, error) {
	sp, err := s.Salespeople.GetByID(ctx, salespersonID)
	if err != nil {
		return 0, err
	}
	if sp == nil {
		return 0, fmt.Errorf("%w: trabajador %d", domain.ErrNotFound, salespersonID)
	}
	return sp.PersonID, nil
}

func (r *Resolver) canBootstrap(actor entity.Actor, personID int64) bool {
	return r.policy.AllowSalespersonBootstrap || actor.IsAdmin() || actor.PersonID == personID
}

func requirePerson(ctx context.Context, s repository.Store, personID int64) error {
	p, err := s.Persons.GetByID(ctx, personID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: persona %d", domain.ErrNotFound, personID)
	}
	return nil
}
