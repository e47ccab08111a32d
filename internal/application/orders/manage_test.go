package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/application/orders"
	"github.com/jhoicas/ordena-api/internal/domain"
	"github.com/jhoicas/ordena-api/internal/domain/authz"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
)

func (h *engineHarness) addOrder(companyID string, createdAt time.Time) *entity.Order {
	creator := "u-" + uuid.New().String()
	shipped := createdAt
	o := &entity.Order{
		ID:            uuid.New().String(),
		ProductID:     uuid.New().String(),
		Quantity:      1,
		Status:        entity.OrderStatusSuccess,
		CreatedBy:     &creator,
		CreatedByName: "Creador Demo",
		ProductName:   "Producto Demo",
		CreatedAt:     createdAt,
		ShippedAt:     &shipped,
	}
	if companyID != "" {
		cid := companyID
		o.CompanyID = &cid
	}
	_ = h.orders.Create(o)
	return o
}

func adminActor() authz.Actor {
	a := operatorActor()
	a.ID = "adm-1"
	a.Role = entity.RoleAdmin
	return a
}

// ── Visibilidad ───────────────────────────────────────────────────────────────

func TestManageOrder_GetByID_AisladoPorEmpresa(t *testing.T) {
	h := newEngine()
	manage := orders.NewManageOrderUseCase(h.orders)

	mine := h.addOrder(testCompany, time.Now())
	foreign := h.addOrder("otra-empresa", time.Now())
	orphan := h.addOrder("", time.Now()) // sin empresa (creador borrado)

	out, err := manage.GetByID(operatorActor(), mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, out.ID)

	// Fuera del alcance la orden "no existe", nunca 403
	_, err = manage.GetByID(operatorActor(), foreign.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = manage.GetByID(operatorActor(), orphan.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El superusuario las ve todas
	su := authz.Actor{ID: "root", IsSuperuser: true}
	for _, id := range []string{mine.ID, foreign.ID, orphan.ID} {
		_, err := manage.GetByID(su, id)
		assert.NoError(t, err)
	}
}

// ── Edición de estado ─────────────────────────────────────────────────────────

func TestManageOrder_UpdateStatus_OperadorSoloHoy(t *testing.T) {
	h := newEngine()
	manage := orders.NewManageOrderUseCase(h.orders)

	today := h.addOrder(testCompany, time.Now())
	yesterday := h.addOrder(testCompany, time.Now().AddDate(0, 0, -1))

	out, err := manage.UpdateStatus(operatorActor(), today.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusFailed})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusFailed, out.Status)

	_, err = manage.UpdateStatus(operatorActor(), yesterday.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusFailed})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El admin edita sin importar la fecha
	out, err = manage.UpdateStatus(adminActor(), yesterday.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusFailed})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusFailed, out.Status)
}

func TestManageOrder_UpdateStatus_EstadoInvalido(t *testing.T) {
	h := newEngine()
	manage := orders.NewManageOrderUseCase(h.orders)
	o := h.addOrder(testCompany, time.Now())

	_, err := manage.UpdateStatus(adminActor(), o.ID, dto.UpdateOrderStatusRequest{Status: "enviadísima"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Borrado ───────────────────────────────────────────────────────────────────

func TestManageOrder_Delete_SoloAdmin(t *testing.T) {
	h := newEngine()
	manage := orders.NewManageOrderUseCase(h.orders)
	o := h.addOrder(testCompany, time.Now())

	// Operador nunca borra, ni siquiera órdenes de hoy
	err := manage.Delete(operatorActor(), o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = manage.Delete(adminActor(), o.ID)
	require.NoError(t, err)
	_, err = manage.GetByID(adminActor(), o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Listado ───────────────────────────────────────────────────────────────────

func TestManageOrder_List_ScopedVsGlobal(t *testing.T) {
	h := newEngine()
	manage := orders.NewManageOrderUseCase(h.orders)

	h.addOrder(testCompany, time.Now())
	h.addOrder("otra-empresa", time.Now())
	h.addOrder("", time.Now()) // huérfana: solo visible globalmente

	scoped, err := manage.List(operatorActor(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, scoped.Items, 1)

	all, err := manage.List(authz.Actor{ID: "root", IsSuperuser: true}, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
}

// ── Exportación ───────────────────────────────────────────────────────────────

type stubReportGen struct {
	gotTitle string
	gotRows  []dto.OrderExportRow
}

func (g *stubReportGen) GenerateOrdersPDF(_ context.Context, title string, rows []dto.OrderExportRow) ([]byte, error) {
	g.gotTitle = title
	g.gotRows = rows
	return []byte("%PDF-stub"), nil
}

func TestExportOrders_Rows_FallbackCreador(t *testing.T) {
	h := newEngine()
	export := orders.NewExportOrdersUseCase(h.orders, &stubReportGen{})

	o := h.addOrder(testCompany, time.Now())
	// Simular creador borrado: sin nombre resuelto
	stored, _ := h.orders.GetByID(o.ID)
	stored.CreatedByName = ""
	_ = h.orders.Create(stored)

	rows, err := export.Rows(operatorActor())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "N/A", rows[0].CreatedBy)
	assert.Equal(t, o.ID, rows[0].OrderID)
}

func TestExportOrders_PDF_DelegaAlGenerador(t *testing.T) {
	h := newEngine()
	gen := &stubReportGen{}
	export := orders.NewExportOrdersUseCase(h.orders, gen)

	h.addOrder(testCompany, time.Now())
	h.addOrder("otra-empresa", time.Now())

	out, err := export.PDF(context.Background(), operatorActor())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), out)
	assert.Len(t, gen.gotRows, 1) // solo las visibles para el actor
	assert.Contains(t, gen.gotTitle, "Reporte de órdenes")
}
