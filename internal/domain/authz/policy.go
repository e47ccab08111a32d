// Package authz implementa la política de autorización como función de decisión
// pura: (actor, acción, objetivo, ahora) → permitir/denegar. Sin efectos
// secundarios y sin dependencia del contexto HTTP, para que el motor de órdenes
// y los handlers usen exactamente la misma tabla.
//
// El filtrado a nivel de registro (scoping por empresa en listados) vive en la
// capa de consultas; aquí solo se decide el permiso sobre un objeto concreto.
package authz

import (
	"time"

	"github.com/jhoicas/ordena-api/internal/domain/entity"
)

// Action acciones sobre una entidad.
type Action string

const (
	ActionView   Action = "view"
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Actor identidad ya autenticada que ejecuta la acción. Se construye desde los
// claims del token; el motor confía en estos datos (no hay estado ambiente).
type Actor struct {
	ID          string
	CompanyID   string
	Email       string
	Role        string // admin, operator, viewer
	IsSuperuser bool
	IsStaff     bool
}

// OrderTarget datos mínimos de la orden objetivo para decidir edit/delete.
// CompanyID es la empresa del creador; nil si la orden no tiene creador
// (en ese caso solo un superusuario pasa).
type OrderTarget struct {
	CompanyID *string
	CreatedAt time.Time
}

// ProductTarget datos mínimos del producto objetivo.
type ProductTarget struct {
	CompanyID string
}

// CanAccessModule indica si el actor puede entrar a los módulos de gestión.
func CanAccessModule(actor Actor) bool {
	return actor.IsStaff || actor.IsSuperuser
}

// CanOrder decide la acción sobre órdenes.
//
//	superuser                            → todo permitido
//	viewer                               → todo denegado (salvo view)
//	admin, misma empresa                 → add, edit, delete
//	admin, otra empresa                  → add (las propias), nada sobre ajenas
//	operator, misma empresa, creada HOY  → add, edit (nunca delete)
//	operator, misma empresa, otro día    → solo add
//
// "Hoy" compara la fecha calendario de target.CreatedAt con la de now en la
// zona horaria de referencia del servidor: una orden de ayer a las 23:59 no es
// editable a la mañana siguiente, sin ventana de gracia.
// Para edit/delete el target nunca es nil (responsabilidad del llamador).
func CanOrder(actor Actor, action Action, target *OrderTarget, now time.Time) bool {
	if actor.IsSuperuser {
		return true
	}
	switch action {
	case ActionView:
		return CanAccessModule(actor)
	case ActionAdd:
		return actor.Role == entity.RoleAdmin || actor.Role == entity.RoleOperator
	case ActionEdit:
		if !sameCompanyAsOrder(actor, target) {
			return false
		}
		switch actor.Role {
		case entity.RoleAdmin:
			return true
		case entity.RoleOperator:
			return sameCalendarDay(target.CreatedAt, now)
		}
		return false
	case ActionDelete:
		return actor.Role == entity.RoleAdmin && sameCompanyAsOrder(actor, target)
	}
	return false
}

// CanProduct decide la acción sobre productos.
//
//	add:    admin y operator (superuser siempre)
//	edit:   admin y operator, misma empresa
//	delete: solo admin, misma empresa (baja lógica)
func CanProduct(actor Actor, action Action, target *ProductTarget) bool {
	if actor.IsSuperuser {
		return true
	}
	switch action {
	case ActionView:
		return CanAccessModule(actor)
	case ActionAdd:
		return actor.Role == entity.RoleAdmin || actor.Role == entity.RoleOperator
	case ActionEdit:
		if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleOperator {
			return false
		}
		return target != nil && target.CompanyID == actor.CompanyID
	case ActionDelete:
		return actor.Role == entity.RoleAdmin && target != nil && target.CompanyID == actor.CompanyID
	}
	return false
}

// sameCompanyAsOrder: una orden sin creador no pertenece a ninguna empresa,
// así que ningún no-superusuario pasa el chequeo.
func sameCompanyAsOrder(actor Actor, target *OrderTarget) bool {
	if target == nil || target.CompanyID == nil {
		return false
	}
	return *target.CompanyID == actor.CompanyID
}

// sameCalendarDay compara fechas calendario en la zona horaria de now.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
