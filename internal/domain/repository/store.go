package repository

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store struct {
	Persons     PersonRepository
	Customers   CustomerRepository
	Salespeople SalespersonRepository
	Currencies  CurrencyRepository
	TimeBuckets TimeBucketRepository
	Items       InventoryItemRepository
	Movements   InventoryMovementRepository
	Orders      OrderRepository
}
