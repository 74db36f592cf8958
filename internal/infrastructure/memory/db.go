// Package memory implementa los repositorios en memoria. Sirve para demos (DB_DRIVER=memory)
// y para las pruebas de los casos de uso sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/domain/repository"
)

type state struct {
	persons     map[int64]entity.Person
	customers   map[int64]entity.Customer
	salespeople map[int64]entity.Salesperson
	currencies  map[int64]entity.Currency
	buckets     map[int64]entity.TimeBucket
	items       map[int64]entity.InventoryItem
	movements   []entity.InventoryMovement
	orders      map[int64]entity.Order
	lines       []entity.OrderLine

	lastID      map[string]int64
	orderNumber int64
}

func newState() *state {
	return &state{
		persons:     map[int64]entity.Person{},
		customers:   map[int64]entity.Customer{},
		salespeople: map[int64]entity.Salesperson{},
		currencies:  map[int64]entity.Currency{},
		buckets:     map[int64]entity.TimeBucket{},
		items:       map[int64]entity.InventoryItem{},
		orders:      map[int64]entity.Order{},
		lastID:      map[string]int64{},
	}
}

func (s *state) nextID(table string) int64 {
	s.lastID[table]++
	return s.lastID[table]
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.persons {
		c.persons[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.salespeople {
		c.salespeople[k] = v
	}
	for k, v := range s.currencies {
		c.currencies[k] = v
	}
	for k, v := range s.buckets {
		c.buckets[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.lastID {
		c.lastID[k] = v
	}
	c.movements = append([]entity.InventoryMovement(nil), s.movements...)
	c.lines = append([]entity.OrderLine(nil), s.lines...)
	c.orderNumber = s.orderNumber
	return c
}

// access abstrae si los repositorios operan sobre el estado compartido o sobre la copia de una tx.
type access interface {
	read(fn func(*state) error) error
	write(fn func(*state) error) error
}

// DB guarda el estado y serializa las transacciones. Una transacción trabaja sobre una copia
// que reemplaza al estado solo si fn termina sin error.
type DB struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *state
}

// New crea una base vacía.
func New() *DB {
	return &DB{data: newState()}
}

type shared struct{ db *DB }

func (a shared) read(fn func(*state) error) error {
	a.db.mu.RLock()
	defer a.db.mu.RUnlock()
	return fn(a.db.data)
}

func (a shared) write(fn func(*state) error) error {
	a.db.txMu.Lock()
	defer a.db.txMu.Unlock()
	a.db.mu.Lock()
	defer a.db.mu.Unlock()
	return fn(a.db.data)
}

type txState struct{ st *state }

func (a txState) read(fn func(*state) error) error  { return fn(a.st) }
func (a txState) write(fn func(*state) error) error { return fn(a.st) }

// Store devuelve repositorios sobre el estado compartido (lecturas fuera de transacción).
func (db *DB) Store() repository.Store {
	return newStore(shared{db: db})
}

// Run ejecuta fn en una transacción. Las transacciones se serializan entre sí.
func (db *DB) Run(ctx context.Context, fn func(s repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	work := db.data.clone()
	db.mu.RUnlock()

	if err := fn(newStore(txState{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	db.mu.Lock()
	db.data = work
	db.mu.Unlock()
	return nil
}

func newStore(a access) repository.Store {
	return repository.Store{
		Persons:     &personRepo{a},
		Customers:   &customerRepo{a},
		Salespeople: &salespersonRepo{a},
		Currencies:  &currencyRepo{a},
		TimeBuckets: &timeBucketRepo{a},
		Items:       &itemRepo{a},
		Movements:   &movementRepo{a},
		Orders:      &orderRepo{a},
	}
}
