package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

type personRepo struct{ acc access }

func (r *personRepo) GetByID(ctx context.Context, id int64) (*entity.Person, error) {
	var out *entity.Person
	err := r.acc.read(func(s *state) error {
		if p, ok := s.persons[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

type customerRepo struct{ acc access }

func (r *customerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.acc.read(func(s *state) error {
		if c, ok := s.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) GetByPersonID(ctx context.Context, personID int64) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.acc.read(func(s *state) error {
		out = customerByPerson(s, personID)
		return nil
	})
	return out, err
}

func (r *customerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.acc.write(func(s *state) error {
		if _, ok := s.persons[c.PersonID]; !ok {
			return fmt.Errorf("%w: persona %d", domain.ErrNotFound, c.PersonID)
		}
		if customerByPerson(s, c.PersonID) != nil {
			return fmt.Errorf("%w: la persona %d ya es cliente", domain.ErrConflict, c.PersonID)
		}
		c.ID = s.nextID("cliente")
		s.customers[c.ID] = *c
		return nil
	})
}

func customerByPerson(s *state, personID int64) *entity.Customer {
	for _, c := range s.customers {
		if c.PersonID == personID {
			c := c
			return &c
		}
	}
	return nil
}

type salespersonRepo struct{ acc access }

func (r *salespersonRepo) GetByID(ctx context.Context, id int64) (*entity.Salesperson, error) {
	var out *entity.Salesperson
	err := r.acc.read(func(s *state) error {
		if sp, ok := s.salespeople[id]; ok {
			out = &sp
		}
		return nil
	})
	return out, err
}

func (r *salespersonRepo) GetByPersonID(ctx context.Context, personID int64) (*entity.Salesperson, error) {
	var out *entity.Salesperson
	err := r.acc.read(func(s *state) error {
		out = activeSalesperson(s, personID)
		return nil
	})
	return out, err
}

func (r *salespersonRepo) Create(ctx context.Context, sp *entity.Salesperson) error {
	return r.acc.write(func(s *state) error {
		if _, ok := s.persons[sp.PersonID]; !ok {
			return fmt.Errorf("%w: persona %d", domain.ErrNotFound, sp.PersonID)
		}
		if sp.Active && activeSalesperson(s, sp.PersonID) != nil {
			return fmt.Errorf("%w: la persona %d ya es vendedor", domain.ErrConflict, sp.PersonID)
		}
		sp.ID = s.nextID("trabajadores")
		s.salespeople[sp.ID] = *sp
		return nil
	})
}

// activeSalesperson devuelve el vínculo activo de menor ID.
func activeSalesperson(s *state, personID int64) *entity.Salesperson {
	var found *entity.Salesperson
	for _, sp := range s.salespeople {
		if sp.PersonID != personID || !sp.Active {
			continue
		}
		if found == nil || sp.ID < found.ID {
			sp := sp
			found = &sp
		}
	}
	return found
}

type currencyRepo struct{ acc access }

func (r *currencyRepo) GetByID(ctx context.Context, id int64) (*entity.Currency, error) {
	var out *entity.Currency
	err := r.acc.read(func(s *state) error {
		if c, ok := s.currencies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *currencyRepo) GetDefault(ctx context.Context) (*entity.Currency, error) {
	var out *entity.Currency
	err := r.acc.read(func(s *state) error {
		ids := make([]int64, 0, len(s.currencies))
		for id, c := range s.currencies {
			if c.Active {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return nil
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		c := s.currencies[ids[0]]
		out = &c
		return nil
	})
	return out, err
}

func (r *currencyRepo) Seed(ctx context.Context, c *entity.Currency) error {
	return r.acc.write(func(s *state) error {
		for id, existing := range s.currencies {
			if existing.Code == c.Code {
				existing.Active = true
				s.currencies[id] = existing
				return nil
			}
		}
		c.ID = s.nextID("moneda")
		s.currencies[c.ID] = *c
		return nil
	})
}

type timeBucketRepo struct{ acc access }

func (r *timeBucketRepo) Create(ctx context.Context, b *entity.TimeBucket) error {
	return r.acc.write(func(s *state) error {
		b.ID = s.nextID("tiempo")
		s.buckets[b.ID] = *b
		return nil
	})
}
