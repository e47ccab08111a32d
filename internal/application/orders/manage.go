package orders

import (
	"time"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/domain"
	"github.com/jhoicas/ordena-api/internal/domain/authz"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
	"github.com/jhoicas/ordena-api/internal/domain/repository"
)

// ManageOrderUseCase consulta y administración de órdenes ya colocadas:
// listados scoped por empresa, edición de estado y borrado, todo pasado por la
// política de autorización. Nunca toca quantity ni shipped_at: esos campos
// quedan congelados tras la colocación porque el stock ya fue descontado.
type ManageOrderUseCase struct {
	orderRepo repository.OrderRepository
}

// NewManageOrderUseCase construye el caso de uso.
func NewManageOrderUseCase(orderRepo repository.OrderRepository) *ManageOrderUseCase {
	return &ManageOrderUseCase{orderRepo: orderRepo}
}

// List lista órdenes: superusuario ve todas, el resto solo las de su empresa.
// El scoping hace join por created_by, así que las órdenes sin creador quedan
// excluidas de todo listado no-superusuario.
func (uc *ManageOrderUseCase) List(actor authz.Actor, limit, offset int) (*dto.OrderListResponse, error) {
	var (
		list []*entity.Order
		err  error
	)
	if actor.IsSuperuser {
		list, err = uc.orderRepo.ListAll(limit, offset)
	} else {
		list, err = uc.orderRepo.ListByCompany(actor.CompanyID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID obtiene una orden aplicando aislamiento por empresa: una orden de
// otra empresa (o sin creador) es invisible para un no-superusuario.
func (uc *ManageOrderUseCase) GetByID(actor authz.Actor, id string) (*dto.OrderResponse, error) {
	order, err := uc.visibleOrder(actor, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// UpdateStatus edita el estado de una orden según la tabla de decisión:
// admin de la misma empresa siempre; operador solo si la orden fue creada HOY.
func (uc *ManageOrderUseCase) UpdateStatus(actor authz.Actor, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.visibleOrder(actor, id)
	if err != nil {
		return nil, err
	}
	target := &authz.OrderTarget{CompanyID: order.CompanyID, CreatedAt: order.CreatedAt}
	if !authz.CanOrder(actor, authz.ActionEdit, target, time.Now()) {
		return nil, domain.ErrForbidden
	}
	if err := uc.orderRepo.UpdateStatus(order.ID, in.Status); err != nil {
		return nil, err
	}
	order.Status = in.Status
	resp := toOrderResponse(order)
	return &resp, nil
}

// Delete borra una orden (solo admin de la misma empresa o superusuario).
func (uc *ManageOrderUseCase) Delete(actor authz.Actor, id string) error {
	order, err := uc.visibleOrder(actor, id)
	if err != nil {
		return err
	}
	target := &authz.OrderTarget{CompanyID: order.CompanyID, CreatedAt: order.CreatedAt}
	if !authz.CanOrder(actor, authz.ActionDelete, target, time.Now()) {
		return domain.ErrForbidden
	}
	return uc.orderRepo.Delete(order.ID)
}

// visibleOrder aplica la visibilidad por empresa antes de cualquier decisión:
// fuera del alcance del actor la orden simplemente "no existe".
func (uc *ManageOrderUseCase) visibleOrder(actor authz.Actor, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if actor.IsSuperuser {
		return order, nil
	}
	if order.CompanyID == nil || *order.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
