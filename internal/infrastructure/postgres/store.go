package postgres

import "github.com/jhoicas/pymes-api/internal/domain/repository"

// NewStore arma todos los repositorios sobre el mismo Querier (pool o tx).
func NewStore(q Querier) repository.Store {
	return repository.Store{
		Persons:     NewPersonRepository(q),
		Customers:   NewCustomerRepository(q),
		Salespeople: NewSalespersonRepository(q),
		Currencies:  NewCurrencyRepository(q),
		TimeBuckets: NewTimeBucketRepository(q),
		Items:       NewInventoryItemRepository(q),
		Movements:   NewInventoryMovementRepository(q),
		Orders:      NewOrderRepository(q),
	}
}
