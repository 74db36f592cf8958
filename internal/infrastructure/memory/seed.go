package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pymes-api/internal/domain/entity"
)

// AddPerson inserta una persona y devuelve su ID.
func (db *DB) AddPerson(p entity.Person) int64 {
	db.mutate(func(s *state) {
		p.ID = s.nextID("personas")
		s.persons[p.ID] = p
	})
	return p.ID
}

// AddCustomer vincula la persona como cliente y devuelve el pk_cliente.
func (db *DB) AddCustomer(personID int64) int64 {
	var id int64
	db.mutate(func(s *state) {
		id = s.nextID("cliente")
		s.customers[id] = entity.Customer{ID: id, PersonID: personID}
	})
	return id
}

// AddSalesperson vincula la persona como vendedor activo y devuelve el pk_trabajadores.
func (db *DB) AddSalesperson(personID int64) int64 {
	var id int64
	db.mutate(func(s *state) {
		id = s.nextID("trabajadores")
		s.salespeople[id] = entity.Salesperson{
			ID:       id,
			PersonID: personID,
			Title:    entity.DefaultSalespersonTitle,
			Active:   true,
			HiredAt:  time.Now(),
		}
	})
	return id
}

// AddCurrency inserta una moneda y devuelve su ID.
func (db *DB) AddCurrency(c entity.Currency) int64 {
	db.mutate(func(s *state) {
		c.ID = s.nextID("moneda")
		s.currencies[c.ID] = c
	})
	return c.ID
}

// AddItem inserta un producto y devuelve su ID.
func (db *DB) AddItem(it entity.InventoryItem) int64 {
	db.mutate(func(s *state) {
		now := time.Now()
		it.ID = s.nextID("inventario")
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		it.UpdatedAt = it.CreatedAt
		s.items[it.ID] = it
	})
	return it.ID
}

// Item devuelve una copia del producto.
func (db *DB) Item(id int64) (entity.InventoryItem, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	it, ok := db.data.items[id]
	return it, ok
}

// Movements devuelve una copia del libro de movimientos en orden de inserción.
func (db *DB) Movements() []entity.InventoryMovement {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]entity.InventoryMovement(nil), db.data.movements...)
}

// Counts devuelve la cantidad de filas de órdenes, líneas y vínculos (cliente, vendedor, moneda).
func (db *DB) Counts() (orders, lines, customers, salespeople, currencies int) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.data.orders), len(db.data.lines), len(db.data.customers), len(db.data.salespeople), len(db.data.currencies)
}

func (db *DB) mutate(fn func(s *state)) {
	db.txMu.Lock()
	defer db.txMu.Unlock()
	db.mu.Lock()
	defer db.mu.Unlock()
	fn(db.data)
}

// SeedDemo carga datos de ejemplo para levantar la API sin base de datos.
// Devuelve el ID de la persona administradora.
func (db *DB) SeedDemo() int64 {
	admin := db.AddPerson(entity.Person{Name: "Ana", Surname: "Pérez", NationalID: "11111111-1", Email: "ana@pymes.local", Role: entity.RoleAdmin})
	db.AddSalesperson(admin)
	buyer := db.AddPerson(entity.Person{Name: "Bruno", Surname: "Díaz", NationalID: "22222222-2", Email: "bruno@pymes.local", Role: "cliente"})
	db.AddCustomer(buyer)
	db.AddCurrency(*entity.DefaultCurrency(time.Now()))
	db.AddItem(entity.InventoryItem{OwnerID: &admin, SKU: "CAF-250", Name: "Café molido 250g", Category: "Abarrotes", Stock: 40, UnitPrice: decimal.NewFromInt(4500)})
	db.AddItem(entity.InventoryItem{OwnerID: &admin, SKU: "TE-100", Name: "Té verde 100g", Category: "Abarrotes", Stock: 25, UnitPrice: decimal.NewFromInt(3200)})
	db.AddItem(entity.InventoryItem{OwnerID: &admin, SKU: "AZ-1K", Name: "Azúcar 1kg", Category: "Abarrotes", Stock: 60, UnitPrice: decimal.NewFromInt(1300)})
	return admin
}
