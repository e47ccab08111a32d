package authz_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ordena-api/internal/domain/authz"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
)

const (
	companyA = "00000000-0000-0000-0000-00000000000a"
	companyB = "00000000-0000-0000-0000-00000000000b"
)

func actorWithRole(role, companyID string) authz.Actor {
	return authz.Actor{
		ID:        "u1",
		CompanyID: companyID,
		Role:      role,
		IsStaff:   true,
	}
}

func orderOf(companyID string, createdAt time.Time) *authz.OrderTarget {
	return &authz.OrderTarget{CompanyID: &companyID, CreatedAt: createdAt}
}

// now fijo para que los tests no dependan del reloj: 2025-03-10 09:00 local.
var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

func TestCanOrder_SuperuserTodoPermitido(t *testing.T) {
	su := authz.Actor{ID: "root", IsSuperuser: true}
	old := orderOf(companyB, now.AddDate(0, -1, 0))

	assert.True(t, authz.CanOrder(su, authz.ActionAdd, nil, now))
	assert.True(t, authz.CanOrder(su, authz.ActionEdit, old, now))
	assert.True(t, authz.CanOrder(su, authz.ActionDelete, old, now))
	// Incluso sobre órdenes sin creador (CompanyID nil)
	assert.True(t, authz.CanOrder(su, authz.ActionEdit, &authz.OrderTarget{CreatedAt: now}, now))
}

func TestCanOrder_ViewerTodoDenegado(t *testing.T) {
	viewer := actorWithRole(entity.RoleViewer, companyA)
	target := orderOf(companyA, now)

	assert.False(t, authz.CanOrder(viewer, authz.ActionAdd, nil, now))
	assert.False(t, authz.CanOrder(viewer, authz.ActionEdit, target, now))
	assert.False(t, authz.CanOrder(viewer, authz.ActionDelete, target, now))
	// view sí: el filtrado por empresa ocurre en la consulta
	assert.True(t, authz.CanOrder(viewer, authz.ActionView, nil, now))
}

func TestCanOrder_AdminMismaEmpresa(t *testing.T) {
	admin := actorWithRole(entity.RoleAdmin, companyA)
	old := orderOf(companyA, now.AddDate(0, 0, -30))

	assert.True(t, authz.CanOrder(admin, authz.ActionAdd, nil, now))
	assert.True(t, authz.CanOrder(admin, authz.ActionEdit, old, now))
	assert.True(t, authz.CanOrder(admin, authz.ActionDelete, old, now))
}

func TestCanOrder_AdminOtraEmpresaDenegado(t *testing.T) {
	admin := actorWithRole(entity.RoleAdmin, companyA)
	foreign := orderOf(companyB, now)

	// Puede colocar órdenes propias, pero no tocar las de otra empresa
	assert.True(t, authz.CanOrder(admin, authz.ActionAdd, nil, now))
	assert.False(t, authz.CanOrder(admin, authz.ActionEdit, foreign, now))
	assert.False(t, authz.CanOrder(admin, authz.ActionDelete, foreign, now))
}

func TestCanOrder_OperadorSoloEditaOrdenesDeHoy(t *testing.T) {
	op := actorWithRole(entity.RoleOperator, companyA)

	today := orderOf(companyA, time.Date(2025, 3, 10, 0, 1, 0, 0, time.Local))
	assert.True(t, authz.CanOrder(op, authz.ActionEdit, today, now),
		"una orden creada hoy (a cualquier hora) debe ser editable por el operador")

	// 23:59 de ayer: un minuto antes de medianoche, sin ventana de gracia
	yesterday := orderOf(companyA, time.Date(2025, 3, 9, 23, 59, 0, 0, time.Local))
	assert.False(t, authz.CanOrder(op, authz.ActionEdit, yesterday, now),
		"una orden de ayer a las 23:59 no es editable a la mañana siguiente")

	// delete nunca, ni siquiera las de hoy
	assert.False(t, authz.CanOrder(op, authz.ActionDelete, today, now))
	assert.True(t, authz.CanOrder(op, authz.ActionAdd, nil, now))
}

func TestCanOrder_OperadorOtraEmpresaDenegado(t *testing.T) {
	op := actorWithRole(entity.RoleOperator, companyA)
	foreign := orderOf(companyB, now)

	assert.False(t, authz.CanOrder(op, authz.ActionEdit, foreign, now))
	assert.False(t, authz.CanOrder(op, authz.ActionDelete, foreign, now))
}

func TestCanOrder_OrdenSinCreadorSoloSuperuser(t *testing.T) {
	// Orden cuyo creador fue borrado: no pertenece a ninguna empresa.
	orphan := &authz.OrderTarget{CompanyID: nil, CreatedAt: now}

	admin := actorWithRole(entity.RoleAdmin, companyA)
	assert.False(t, authz.CanOrder(admin, authz.ActionEdit, orphan, now))
	assert.False(t, authz.CanOrder(admin, authz.ActionDelete, orphan, now))

	su := authz.Actor{IsSuperuser: true}
	assert.True(t, authz.CanOrder(su, authz.ActionDelete, orphan, now))
}

func TestCanProduct_TablaDeDecision(t *testing.T) {
	mine := &authz.ProductTarget{CompanyID: companyA}
	foreign := &authz.ProductTarget{CompanyID: companyB}

	admin := actorWithRole(entity.RoleAdmin, companyA)
	op := actorWithRole(entity.RoleOperator, companyA)
	viewer := actorWithRole(entity.RoleViewer, companyA)

	// add
	assert.True(t, authz.CanProduct(admin, authz.ActionAdd, nil))
	assert.True(t, authz.CanProduct(op, authz.ActionAdd, nil))
	assert.False(t, authz.CanProduct(viewer, authz.ActionAdd, nil))

	// edit: admin y operator, misma empresa
	assert.True(t, authz.CanProduct(admin, authz.ActionEdit, mine))
	assert.True(t, authz.CanProduct(op, authz.ActionEdit, mine))
	assert.False(t, authz.CanProduct(admin, authz.ActionEdit, foreign))
	assert.False(t, authz.CanProduct(viewer, authz.ActionEdit, mine))

	// delete: solo admin, misma empresa
	assert.True(t, authz.CanProduct(admin, authz.ActionDelete, mine))
	assert.False(t, authz.CanProduct(admin, authz.ActionDelete, foreign))
	assert.False(t, authz.CanProduct(op, authz.ActionDelete, mine))
	assert.False(t, authz.CanProduct(viewer, authz.ActionDelete, mine))

	// superuser todo
	su := authz.Actor{IsSuperuser: true}
	assert.True(t, authz.CanProduct(su, authz.ActionDelete, foreign))
}

func TestCanAccessModule(t *testing.T) {
	assert.True(t, authz.CanAccessModule(authz.Actor{IsStaff: true}))
	assert.True(t, authz.CanAccessModule(authz.Actor{IsSuperuser: true}))
	assert.False(t, authz.CanAccessModule(authz.Actor{Role: entity.RoleAdmin}))
}
