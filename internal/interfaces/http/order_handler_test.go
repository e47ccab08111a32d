package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/application/orders"
	"github.com/jhoicas/ordena-api/internal/domain"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
	"github.com/jhoicas/ordena-api/internal/domain/repository"
	apphttp "github.com/jhoicas/ordena-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para ejercitar POST /api/orders de punta a punta
// ──────────────────────────────────────────────────────────────────────────────

type handlerStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	orders   map[string]*entity.Order
}

type handlerProductRepo struct{ s *handlerStore }

func (r *handlerProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *handlerProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *handlerProductRepo) GetByCompanyAndName(string, string) (*entity.Product, error) {
	return nil, nil
}

func (r *handlerProductRepo) Update(*entity.Product) error { return nil }

func (r *handlerProductRepo) ListByCompany(string, bool, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *handlerProductRepo) DecrementStock(productID string, qty int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	if p.Stock < qty {
		return p.Stock, &domain.InsufficientStockError{Available: p.Stock}
	}
	p.Stock -= qty
	return p.Stock, nil
}

func (r *handlerProductRepo) Deactivate([]string, string) (int64, error) { return 0, nil }

type handlerOrderRepo struct{ s *handlerStore }

func (r *handlerOrderRepo) Create(o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *handlerOrderRepo) GetByID(id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *handlerOrderRepo) MarkShipped(orderID string, shippedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrConflict
	}
	o.Status = entity.OrderStatusSuccess
	ts := shippedAt
	o.ShippedAt = &ts
	return nil
}

func (r *handlerOrderRepo) UpdateStatus(string, string) error { return nil }

func (r *handlerOrderRepo) ListByCompany(string, int, int) ([]*entity.Order, error) {
	return nil, nil
}

func (r *handlerOrderRepo) ListAll(int, int) ([]*entity.Order, error) { return nil, nil }

func (r *handlerOrderRepo) ListByCompanyForExport(string) ([]*entity.Order, error) {
	return nil, nil
}

func (r *handlerOrderRepo) ListAllForExport() ([]*entity.Order, error) { return nil, nil }

func (r *handlerOrderRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.orders, id)
	return nil
}

// handlerTxRunner: commit directo si fn no falla; si falla, borra la orden
// creada (rollback suficiente para estos escenarios).
type handlerTxRunner struct{ s *handlerStore }

func (t *handlerTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.s.mu.Lock()
	before := make(map[string]bool, len(t.s.orders))
	for id := range t.s.orders {
		before[id] = true
	}
	t.s.mu.Unlock()

	err := fn(&handlerOrderRepo{s: t.s}, &handlerProductRepo{s: t.s})
	if err != nil {
		t.s.mu.Lock()
		for id := range t.s.orders {
			if !before[id] {
				delete(t.s.orders, id)
			}
		}
		t.s.mu.Unlock()
	}
	return err
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, orders.OrderConfirmation) {}

func buildOrdersApp(t *testing.T, stock int64) (*fiber.App, string) {
	t.Helper()
	store := &handlerStore{
		products: map[string]*entity.Product{},
		orders:   map[string]*entity.Order{},
	}
	productRepo := &handlerProductRepo{s: store}
	orderRepo := &handlerOrderRepo{s: store}
	productID := "11111111-1111-1111-1111-111111111111"
	_ = productRepo.Create(&entity.Product{
		ID:        productID,
		CompanyID: testCompanyID,
		Name:      "Teclado",
		Price:     decimal.RequireFromString("5.00"),
		Stock:     stock,
		IsActive:  true,
	})

	place := orders.NewPlaceOrderUseCase(&handlerTxRunner{s: store}, productRepo, orderRepo, noopNotifier{})
	manage := orders.NewManageOrderUseCase(orderRepo)
	export := orders.NewExportOrdersUseCase(orderRepo, &noopReportGen{})

	app := fiber.New()
	app.Post("/api/orders",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.NewOrderHandler(place, manage, export).Place,
	)
	return app, productID
}

type noopReportGen struct{}

func (noopReportGen) GenerateOrdersPDF(context.Context, string, []dto.OrderExportRow) ([]byte, error) {
	return nil, nil
}

func postOrders(t *testing.T, app *fiber.App, role, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/orders — objeto (una orden) y arreglo (lote)
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceEndpoint_ObjetoCreaUnaOrden(t *testing.T) {
	app, productID := buildOrdersApp(t, 10)

	resp := postOrders(t, app, entity.RoleOperator,
		`{"product_id": "`+productID+`", "quantity": 4}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.OrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.OrderStatusSuccess, out.Status)
	assert.Equal(t, int64(4), out.Quantity)
	assert.NotNil(t, out.ShippedAt)
}

func TestPlaceEndpoint_ArregloEsLoteBestEffort(t *testing.T) {
	app, productID := buildOrdersApp(t, 5)

	// El segundo ítem excede el stock restante; el primero no debe revertirse
	resp := postOrders(t, app, entity.RoleOperator,
		`[{"product_id": "`+productID+`", "quantity": 3},
		  {"product_id": "`+productID+`", "quantity": 99}]`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.BulkOrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	require.Len(t, out.Created, 1)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, 1, out.Errors[0].Index)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Errors[0].Code)
}

func TestPlaceEndpoint_LoteTodoFallido_Retorna400(t *testing.T) {
	app, productID := buildOrdersApp(t, 1)

	resp := postOrders(t, app, entity.RoleOperator,
		`[{"product_id": "`+productID+`", "quantity": 50}]`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.BulkOrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
	assert.Empty(t, out.Created)
}

func TestPlaceEndpoint_StockInsuficiente_409ConDisponible(t *testing.T) {
	app, productID := buildOrdersApp(t, 10)

	resp := postOrders(t, app, entity.RoleOperator,
		`{"product_id": "`+productID+`", "quantity": 20}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var out dto.StockErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	assert.Equal(t, int64(10), out.Available)
}

func TestPlaceEndpoint_ViewerRecibe403(t *testing.T) {
	app, productID := buildOrdersApp(t, 10)

	resp := postOrders(t, app, entity.RoleViewer,
		`{"product_id": "`+productID+`", "quantity": 1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPlaceEndpoint_CantidadInvalida_400(t *testing.T) {
	app, productID := buildOrdersApp(t, 10)

	resp := postOrders(t, app, entity.RoleOperator,
		`{"product_id": "`+productID+`", "quantity": 0}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INVALID_QUANTITY", out.Code)
}
