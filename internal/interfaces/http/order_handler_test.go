package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pymes-api/internal/application/dto"
	"github.com/jhoicas/pymes-api/internal/application/identity"
	"github.com/jhoicas/pymes-api/internal/application/inventory"
	"github.com/jhoicas/pymes-api/internal/application/orders"
	"github.com/jhoicas/pymes-api/internal/domain/entity"
	"github.com/jhoicas/pymes-api/internal/infrastructure/memory"
	"github.com/jhoicas/pymes-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/pymes-api/internal/interfaces/http"
	"github.com/jhoicas/pymes-api/pkg/logger"
)

type apiFixture struct {
	app        *fiber.App
	db         *memory.DB
	seller     int64
	customerID int64
	item       int64
	auth       string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	db := memory.New()
	seller := db.AddPerson(entity.Person{Name: "Valeria", Surname: "Soto", Role: entity.RoleSeller})
	db.AddSalesperson(seller)
	buyer := db.AddPerson(entity.Person{Name: "Carlos", Surname: "Rojas"})
	customerID := db.AddCustomer(buyer)
	item := db.AddItem(entity.InventoryItem{Name: "X", SKU: "X-1", Stock: 10, UnitPrice: decimal.NewFromInt(100)})

	store := db.Store()
	taxRate := decimal.RequireFromString("0.19")
	query := orders.NewQuery(store.Orders)
	coord := orders.NewCoordinator(db, query, identity.NewResolver(identity.Policy{}), inventory.NewLedger(),
		orders.Config{TaxRate: &taxRate}, logger.Nop())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Orders:     coord,
		OrderQuery: query,
		Receipts:   orders.NewReceiptUseCase(query, pdf.NewReceiptGenerator("Almacén Demo")),
		Movements:  inventory.NewMovementsUseCase(store.Movements),
		JWTSecret:  testJWTSecret,
		Logger:     logger.Nop(),
	})
	return &apiFixture{
		app:        app,
		db:         db,
		seller:     seller,
		customerID: customerID,
		item:       item,
		auth:       tokenFor(t, seller, testSessionID, entity.RoleSeller),
	}
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) orderBody(qty int) map[string]any {
	return map[string]any{
		"clienteId":  f.customerID,
		"vendedorId": 1,
		"detalles": []map[string]any{
			{"productoId": f.item, "cantidad": qty, "precio": "100"},
		},
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Caso 1: crear, consultar y cancelar por HTTP.
func TestOrderHandler_FlujoCompleto(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/orders", f.auth, f.orderBody(4))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.OrderCreatedResponse](t, resp)
	assert.Equal(t, "F-000001", created.Number)
	assert.NotEmpty(t, created.Message)

	it, _ := f.db.Item(f.item)
	assert.Equal(t, 6, it.Stock)

	resp = f.do(t, http.MethodGet, "/api/orders", f.auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.OrderSummaryResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "Carlos Rojas", list[0].CustomerName)
	assert.Equal(t, "Pendiente", list[0].Status)

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), f.auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.OrderDetailResponse](t, resp)
	assert.Equal(t, "476", detail.Total.String())
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "X", detail.Lines[0].Producto)

	resp = f.do(t, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", created.ID), f.auth, map[string]string{"status": "Cancelado"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail = decode[dto.OrderDetailResponse](t, resp)
	assert.Equal(t, "Cancelado", detail.Status)

	it, _ = f.db.Item(f.item)
	assert.Equal(t, 10, it.Stock)

	resp = f.do(t, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", created.ID), f.auth, map[string]string{"status": "Cancelado"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "la segunda cancelación es un estado inválido")
}

// Caso 2: stock insuficiente → 400 con el detalle del producto.
func TestOrderHandler_Create_StockInsuficiente(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/orders", f.auth, f.orderBody(11))
	body := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "Stock: 10, solicitado: 11")
}

// Caso 3: token sin sesión no puede crear → 401.
func TestOrderHandler_Create_SinSesion(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/orders", tokenFor(t, f.seller, "", entity.RoleSeller), f.orderBody(1))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 4: cuerpo y referencias inválidas → 400.
func TestOrderHandler_Create_Validaciones(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/orders", f.auth, map[string]any{"clienteId": f.customerID, "vendedorId": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin detalles")
	resp.Body.Close()

	ambiguous := f.orderBody(1)
	ambiguous["clientePersonaId"] = 2
	resp = f.do(t, http.MethodPost, "/api/orders", f.auth, ambiguous)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "cliente por rol y por persona a la vez")
	resp.Body.Close()
}

// Caso 5: orden inexistente → 404; id no numérico → 400.
func TestOrderHandler_Get_NoExiste(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/orders/99", f.auth, nil)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)

	resp = f.do(t, http.MethodGet, "/api/orders/abc", f.auth, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Caso 6: estado fuera del conjunto → 400; orden ausente → 404.
func TestOrderHandler_UpdateStatus_Validaciones(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPatch, "/api/orders/1/status", f.auth, map[string]string{"status": "Perdido"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPatch, "/api/orders/1/status", f.auth, map[string]string{"status": "Listo"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// Caso 7: comprobante PDF.
func TestOrderHandler_DownloadPDF(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/orders", f.auth, f.orderBody(1))
	created := decode[dto.OrderCreatedResponse](t, resp)

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d/pdf", created.ID), f.auth, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "orden_F-000001.pdf")
}

// Caso 8: auditoría de movimientos solo para admin.
func TestInventoryHandler_ListMovements(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/orders", f.auth, f.orderBody(2))
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/inventory/movements", f.auth, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	admin := tokenFor(t, f.seller, testSessionID, entity.RoleAdmin)
	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/inventory/movements?producto_id=%d", f.item), admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.MovementResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "SALIDA", list[0].Type)
	assert.Equal(t, 2, list[0].Quantity)
	assert.Equal(t, "Valeria Soto", list[0].Actor)

	resp = f.do(t, http.MethodGet, "/api/inventory/movements?producto_id=x", admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Caso 9: health sin token.
func TestRouter_Health(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
