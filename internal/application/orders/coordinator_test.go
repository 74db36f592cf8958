package orders_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pymes-api/internal/application/identity"
	"github.com/jhoicas/pymes-api/internal/application/inventory"
	"github.com/jhoicas/pymes-api/internal/application/orders"
	"github.com/jhoicas/pymes-api/internal/domain"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/infrastructure/memory"
	"github.com/jhoicas/pymes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSessionID = "5f2b9c1e-8d7a-4c3b-9e6f-1a2b3c4d5e6f"

type fixture struct {
	db            *memory.DB
	coord         *orders.Coordinator
	query         *orders.Query
	actor         entity.Actor
	sellerPerson  int64
	buyerPerson   int64
	customerID    int64
	salespersonID int64
}

func newFixture(t *testing.T, policy identity.Policy) *fixture {
	t.Helper()
	return newFixtureWithRate(t, policy, nil)
}

// newFixtureWithRate permite fijar la tasa de IVA; nil usa la tasa por defecto.
func newFixtureWithRate(t *testing.T, policy identity.Policy, rate *decimal.Decimal) *fixture {
	t.Helper()
	db := memory.New()
	seller := db.AddPerson(entity.Person{Name: "Valeria", Surname: "Soto", Role: entity.RoleSeller})
	buyer := db.AddPerson(entity.Person{Name: "Carlos", Surname: "Rojas"})
	f := &fixture{
		db:            db,
		sellerPerson:  seller,
		buyerPerson:   buyer,
		customerID:    db.AddCustomer(buyer),
		salespersonID: db.AddSalesperson(seller),
		actor:         entity.Actor{PersonID: seller, SessionID: testSessionID, Role: entity.RoleSeller},
	}
	f.query = orders.NewQuery(db.Store().Orders)
	f.coord = orders.NewCoordinator(
		db,
		f.query,
		identity.NewResolver(policy),
		inventory.NewLedger(),
		orders.Config{TaxRate: rate},
		logger.Nop(),
	)
	return f
}

func (f *fixture) item(t *testing.T, name string, stock int, price int64) int64 {
	t.Helper()
	return f.db.AddItem(entity.InventoryItem{Name: name, SKU: name, Stock: stock, UnitPrice: decimal.NewFromInt(price)})
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	it, ok := f.db.Item(id)
	require.True(t, ok, "el producto %d debe existir", id)
	return it.Stock
}

func (f *fixture) input(lines ...orders.LineInput) orders.CreateInput {
	return orders.CreateInput{
		Customer:    identity.RoleRef(f.customerID),
		Salesperson: identity.RoleRef(f.salespersonID),
		Lines:       lines,
	}
}

func line(itemID int64, qty int, price int64) orders.LineInput {
	return orders.LineInput{ItemID: itemID, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}

func movementsOf(db *memory.DB, itemID int64, kind string) []entity.InventoryMovement {
	var out []entity.InventoryMovement
	for _, m := range db.Movements() {
		if m.ItemID == itemID && m.Type == kind {
			out = append(out, m)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Cancel
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: stock 10, se venden 4 a 100 y luego se cancela la orden.
func TestCoordinator_CrearYCancelar_Escenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	x := f.item(t, "X", 10, 100)

	order, err := f.coord.Create(ctx, f.actor, f.input(line(x, 4, 100)))
	require.NoError(t, err)

	assert.Equal(t, "F-000001", order.Number)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "400", order.Subtotal.String())
	assert.Equal(t, "76.00", order.Tax.StringFixed(2))
	assert.Equal(t, "476.00", order.Total.StringFixed(2))
	assert.Equal(t, 6, f.stock(t, x))

	out := movementsOf(f.db, x, entity.MovementTypeOut)
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].Quantity)
	assert.Equal(t, entity.ReasonSale, out[0].Reason)
	assert.Equal(t, f.sellerPerson, out[0].PersonID)
	assert.Equal(t, testSessionID, out[0].SessionID)

	detail, err := f.coord.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, detail.Status)
	assert.Equal(t, 10, f.stock(t, x))

	in := movementsOf(f.db, x, entity.MovementTypeIn)
	require.Len(t, in, 1)
	assert.Equal(t, 4, in[0].Quantity)
	assert.Equal(t, entity.ReasonCancellation, in[0].Reason)
	assert.Equal(t, testSessionID, in[0].SessionID, "la devolución usa la sesión que autorizó la venta")
}

// Caso 2: la última línea no tiene stock suficiente → nada se persiste.
func TestCoordinator_Create_Atomicidad(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	a := f.item(t, "A", 10, 100)
	b := f.item(t, "B", 10, 50)
	c := f.item(t, "C", 2, 10)

	_, err := f.coord.Create(ctx, f.actor, f.input(line(a, 3, 100), line(b, 5, 50), line(c, 3, 10)))
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, c, stockErr.ItemID)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.stock(t, a))
	assert.Equal(t, 10, f.stock(t, b))
	assert.Equal(t, 2, f.stock(t, c))
	ordersN, linesN, _, _, _ := f.db.Counts()
	assert.Zero(t, ordersN)
	assert.Zero(t, linesN)
	assert.Empty(t, f.db.Movements())
}

// Caso 3: producto inexistente → NotFound y sin efectos.
func TestCoordinator_Create_ProductoInexistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	a := f.item(t, "A", 10, 100)

	_, err := f.coord.Create(ctx, f.actor, f.input(line(a, 1, 100), line(999, 1, 10)))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, f.stock(t, a))
	assert.Empty(t, f.db.Movements())
}

// Caso 4: validaciones de entrada antes de tocar la base.
func TestCoordinator_Create_EntradaInvalida(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	a := f.item(t, "A", 10, 100)

	cases := map[string]orders.CreateInput{
		"sin líneas":      f.input(),
		"cantidad cero":   f.input(line(a, 0, 100)),
		"precio negativo": f.input(line(a, 1, -1)),
		"sin producto":    f.input(line(0, 1, 100)),
		"sin cliente": {
			Salesperson: identity.RoleRef(f.salespersonID),
			Lines:       []orders.LineInput{line(a, 1, 100)},
		},
		"sin vendedor": {
			Customer: identity.RoleRef(f.customerID),
			Lines:    []orders.LineInput{line(a, 1, 100)},
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.coord.Create(ctx, f.actor, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 10, f.stock(t, a))
}

// Caso 5: sin sesión no se crea la orden.
func TestCoordinator_Create_SinSesion(t *testing.T) {
	f := newFixture(t, identity.Policy{})
	a := f.item(t, "A", 10, 100)

	_, err := f.coord.Create(context.Background(), entity.Actor{PersonID: f.sellerPerson}, f.input(line(a, 1, 100)))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Caso 6: la cancelación devuelve exactamente lo vendido y no se repite.
func TestCoordinator_Cancel_RestauraExacto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	a := f.item(t, "A", 20, 10)
	b := f.item(t, "B", 20, 10)

	order, err := f.coord.Create(ctx, f.actor, f.input(line(b, 5, 10), line(a, 3, 10)))
	require.NoError(t, err)
	assert.Equal(t, 17, f.stock(t, a))
	assert.Equal(t, 15, f.stock(t, b))

	detail, err := f.coord.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, detail.Status)
	assert.Equal(t, 20, f.stock(t, a))
	assert.Equal(t, 20, f.stock(t, b))

	_, err = f.coord.Cancel(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 20, f.stock(t, a), "la segunda cancelación no debe devolver stock")
	assert.Len(t, movementsOf(f.db, a, entity.MovementTypeIn), 1)
}

// Caso 7: cancelar una orden inexistente.
func TestCoordinator_Cancel_NoExiste(t *testing.T) {
	f := newFixture(t, identity.Policy{})
	_, err := f.coord.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Caso 8: conservación de stock a lo largo de ventas y cancelaciones.
func TestCoordinator_ConservacionDeStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	const initial = 50
	x := f.item(t, "X", initial, 7)

	var ids []int64
	for _, q := range []int{4, 9, 1, 12} {
		o, err := f.coord.Create(ctx, f.actor, f.input(line(x, q, 7)))
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	_, err := f.coord.Cancel(ctx, ids[1])
	require.NoError(t, err)
	_, err = f.coord.UpdateStatus(ctx, ids[3], entity.OrderStatusCancelled)
	require.NoError(t, err)

	debits, credits := 0, 0
	for _, m := range movementsOf(f.db, x, entity.MovementTypeOut) {
		debits += m.Quantity
	}
	for _, m := range movementsOf(f.db, x, entity.MovementTypeIn) {
		credits += m.Quantity
	}
	assert.Equal(t, 26, debits)
	assert.Equal(t, 21, credits)
	assert.Equal(t, initial-debits+credits, f.stock(t, x))
	assert.Len(t, f.db.Movements(), 6)
}

// Caso 9: el débito procede si y solo si la cantidad no supera el stock.
func TestCoordinator_NuncaStockNegativo(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		f := newFixture(t, identity.Policy{})
		initial := rnd.Intn(20)
		requested := rnd.Intn(25) + 1
		x := f.item(t, "X", initial, 1)

		_, err := f.coord.Create(ctx, f.actor, f.input(line(x, requested, 1)))
		got := f.stock(t, x)
		require.GreaterOrEqual(t, got, 0)
		if requested <= initial {
			require.NoError(t, err, "inicial=%d pedido=%d", initial, requested)
			require.Equal(t, initial-requested, got)
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock, "inicial=%d pedido=%d", initial, requested)
			require.Equal(t, initial, got)
		}
	}
}

// Caso 10: el mismo producto repetido en dos líneas se descuenta dos veces.
func TestCoordinator_Create_ProductoRepetido(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	x := f.item(t, "X", 5, 10)

	_, err := f.coord.Create(ctx, f.actor, f.input(line(x, 3, 10), line(x, 3, 10)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, x))

	o, err := f.coord.Create(ctx, f.actor, f.input(line(x, 2, 10), line(x, 3, 10)))
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, x))

	d, err := f.query.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, d.Lines, 2)
	assert.Equal(t, 2, d.Lines[0].Quantity, "las líneas se guardan en el orden de entrada")
	assert.Equal(t, 3, d.Lines[1].Quantity)
}

// Caso 11: numeración consecutiva.
func TestCoordinator_Create_NumeracionConsecutiva(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	x := f.item(t, "X", 10, 1)

	first, err := f.coord.Create(ctx, f.actor, f.input(line(x, 1, 1)))
	require.NoError(t, err)
	second, err := f.coord.Create(ctx, f.actor, f.input(line(x, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, "F-000001", first.Number)
	assert.Equal(t, "F-000002", second.Number)
}

// Caso 12: cliente y vendedor por ID de persona crean el vínculo una sola vez.
func TestCoordinator_Create_PorPersona(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	x := f.item(t, "X", 10, 1)
	newBuyer := f.db.AddPerson(entity.Person{Name: "Marta", Surname: "Lagos"})
	newSeller := f.db.AddPerson(entity.Person{Name: "Pablo", Surname: "Vera"})
	actor := entity.Actor{PersonID: newSeller, SessionID: testSessionID, Role: entity.RoleSeller}

	in := orders.CreateInput{
		Customer:    identity.PersonRef(newBuyer),
		Salesperson: identity.PersonRef(newSeller),
		Lines:       []orders.LineInput{line(x, 1, 1)},
	}
	_, err := f.coord.Create(ctx, actor, in)
	require.NoError(t, err)
	_, err = f.coord.Create(ctx, actor, in)
	require.NoError(t, err)

	_, _, customers, salespeople, _ := f.db.Counts()
	assert.Equal(t, 2, customers)
	assert.Equal(t, 2, salespeople)
}

// Caso 13: crear el vínculo de vendedor para otra persona requiere permiso.
func TestCoordinator_Create_VendedorAjenoSinPermiso(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	x := f.item(t, "X", 10, 1)
	other := f.db.AddPerson(entity.Person{Name: "Pablo", Surname: "Vera"})

	in := orders.CreateInput{
		Customer:    identity.RoleRef(f.customerID),
		Salesperson: identity.PersonRef(other),
		Lines:       []orders.LineInput{line(x, 1, 1)},
	}
	_, err := f.coord.Create(ctx, f.actor, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 10, f.stock(t, x))

	admin := entity.Actor{PersonID: f.sellerPerson, SessionID: testSessionID, Role: entity.RoleAdmin}
	_, err = f.coord.Create(ctx, admin, in)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

// Caso 14: transiciones que no tocan inventario.
func TestCoordinator_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	x := f.item(t, "X", 10, 1)
	o, err := f.coord.Create(ctx, f.actor, f.input(line(x, 2, 1)))
	require.NoError(t, err)

	d, err := f.coord.UpdateStatus(ctx, o.ID, entity.OrderStatusReady)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReady, d.Status)
	assert.Equal(t, 8, f.stock(t, x))

	_, err = f.coord.UpdateStatus(ctx, o.ID, entity.OrderStatus(9))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.coord.UpdateStatus(ctx, 999, entity.OrderStatusReady)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	d, err = f.coord.UpdateStatus(ctx, o.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, d.Status)
	assert.Equal(t, 10, f.stock(t, x))

	_, err = f.coord.UpdateStatus(ctx, o.ID, entity.OrderStatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una orden cancelada no se reabre")
}

// Caso 15: tasa configurada en 0 (negocio exento) → sin IVA.
func TestCoordinator_Create_TasaCero(t *testing.T) {
	ctx := context.Background()
	zero := decimal.Zero
	f := newFixtureWithRate(t, identity.Policy{}, &zero)
	x := f.item(t, "X", 10, 100)

	order, err := f.coord.Create(ctx, f.actor, f.input(line(x, 4, 100)))
	require.NoError(t, err)
	assert.Equal(t, "400", order.Subtotal.String())
	assert.True(t, order.Tax.IsZero(), "con tasa 0 no se cobra IVA, obtenido %s", order.Tax)
	assert.Equal(t, "400.00", order.Total.StringFixed(2))
}

// Caso 16: sin tasa configurada se aplica el IVA por defecto.
func TestCoordinator_Create_TasaPorDefecto(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWithRate(t, identity.Policy{}, nil)
	x := f.item(t, "X", 10, 100)

	order, err := f.coord.Create(ctx, f.actor, f.input(line(x, 4, 100)))
	require.NoError(t, err)
	assert.Equal(t, "76.00", order.Tax.StringFixed(2))
}

// Caso 17: varias órdenes concurrentes por las últimas unidades → solo una gana.
func TestCoordinator_Create_ConcurrenciaUltimasUnidades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, identity.Policy{})
	x := f.item(t, "X", 5, 10)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.coord.Create(ctx, f.actor, f.input(line(x, 5, 10)))
		}(i)
	}
	close(start)
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 1, ok, "exactamente una orden obtiene el stock")
	assert.Equal(t, 0, f.stock(t, x))

	ordersN, _, _, _, _ := f.db.Counts()
	assert.Equal(t, 1, ordersN)
	require.Len(t, movementsOf(f.db, x, entity.MovementTypeOut), 1)
}
