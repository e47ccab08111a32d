package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/domain"
	"github.com/jhoicas/ordena-api/internal/domain/authz"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
	"github.com/jhoicas/ordena-api/internal/domain/repository"
)

// PlaceOrderUseCase es el motor de colocación de órdenes: valida la tripleta
// (producto, cantidad, actor) y ejecuta la transición atómica
// {crear orden, descontar stock, marcar enviada, notificar}. Todas las entradas
// (formulario, API single, API bulk) pasan por aquí; los handlers son adaptadores.
//
// No hay deduplicación: colocar dos veces la misma orden lógica crea dos filas
// y descuenta stock dos veces. Es comportamiento intencional.
type PlaceOrderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	notifier    Notifier
}

// NewPlaceOrderUseCase construye el motor.
func NewPlaceOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	notifier Notifier,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
	}
}

// PlaceOrder coloca una orden. Precondiciones en este orden exacto (la primera
// que falla gana, sin efectos secundarios previos):
//
//  1. rol ≠ viewer                                  → ErrForbidden
//  2. producto existe, activo y de la empresa del
//     actor (superusuario puede cross-company)      → ErrProductNotFound
//  3. cantidad entero positivo                      → ErrInvalidQuantity
//  4. cantidad <= stock                             → InsufficientStockError{Available}
//
// El punto 4 se re-valida atómicamente dentro de la transacción (descuento
// condicional); si se pierde la carrera contra otra colocación, la transacción
// completa se revierte y el error trae el disponible post-carrera.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, actor authz.Actor, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if !authz.CanOrder(actor, authz.ActionAdd, nil, time.Now()) {
		return nil, domain.ErrForbidden
	}
	order, err := uc.placeOne(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// PlaceOrdersBulk coloca un lote con semántica best-effort: el chequeo de rol se
// evalúa una sola vez para todo el lote; cada ítem corre sus precondiciones y su
// propia sub-transacción, y el fallo de uno no revierte el éxito de otro.
// Created conserva el orden de entrada. Lote vacío → éxito con Created vacío;
// todos fallidos (≥1 error) → ErrBulkAllFailed además del detalle por ítem.
func (uc *PlaceOrderUseCase) PlaceOrdersBulk(ctx context.Context, actor authz.Actor, items []dto.PlaceOrderRequest) (*dto.BulkOrderResponse, error) {
	if !authz.CanOrder(actor, authz.ActionAdd, nil, time.Now()) {
		return nil, domain.ErrForbidden
	}
	out := &dto.BulkOrderResponse{
		Success: true,
		Created: []dto.OrderResponse{},
	}
	for i, item := range items {
		order, err := uc.placeOne(ctx, actor, item)
		if err != nil {
			out.Errors = append(out.Errors, dto.BulkItemError{
				Index:   i,
				Code:    ErrorCode(err),
				Message: err.Error(),
			})
			continue
		}
		out.Created = append(out.Created, toOrderResponse(order))
	}
	out.Message = fmt.Sprintf("%d orden(es) creadas", len(out.Created))
	if len(out.Created) == 0 && len(out.Errors) > 0 {
		out.Success = false
		return out, domain.ErrBulkAllFailed
	}
	return out, nil
}

// placeOne valida un ítem (precondiciones 2–4) y ejecuta la transacción.
// La notificación se emite después del commit: best-effort, nunca revierte.
func (uc *PlaceOrderUseCase) placeOne(ctx context.Context, actor authz.Actor, in dto.PlaceOrderRequest) (*entity.Order, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, &domain.ValidationError{Detail: err.Error()}
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrProductNotFound
	}
	if !actor.IsSuperuser && product.CompanyID != actor.CompanyID {
		return nil, domain.ErrProductNotFound
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Quantity > product.Stock {
		return nil, &domain.InsufficientStockError{Available: product.Stock}
	}

	now := time.Now()
	createdBy := actor.ID
	order := &entity.Order{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Quantity:    in.Quantity,
		Status:      entity.OrderStatusPending,
		CreatedBy:   &createdBy,
		ProductName: product.Name,
		CreatedAt:   now,
	}
	if actor.CompanyID != "" {
		companyID := actor.CompanyID
		order.CompanyID = &companyID
	}

	// Una transacción: insertar pending → descuento condicional → success + shipped_at.
	// DecrementStock re-chequea stock >= qty en la misma sentencia UPDATE; si otro
	// escritor ganó la carrera, retorna InsufficientStockError y todo se revierte.
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		if _, err := productRepo.DecrementStock(product.ID, in.Quantity); err != nil {
			return err
		}
		order.Status = entity.OrderStatusSuccess
		order.ShippedAt = &now
		return orderRepo.MarkShipped(order.ID, now)
	})
	if err != nil {
		var insuf *domain.InsufficientStockError
		if errors.As(err, &insuf) {
			return nil, insuf
		}
		return nil, err
	}

	uc.notify(ctx, actor, order, product)
	return order, nil
}

func (uc *PlaceOrderUseCase) notify(ctx context.Context, actor authz.Actor, order *entity.Order, product *entity.Product) {
	recipient := actor.Email
	if recipient == "" {
		recipient = actor.ID
	}
	uc.notifier.Notify(ctx, OrderConfirmation{
		Recipient:   recipient,
		OrderID:     order.ID,
		ProductName: product.Name,
		Quantity:    order.Quantity,
		UnitPrice:   product.Price,
		Total:       product.Price.Mul(decimal.NewFromInt(order.Quantity)),
		Status:      order.Status,
		ShippedAt:   *order.ShippedAt,
	})
}

// ErrorCode mapea un error del motor a su código de la taxonomía. Los handlers
// y el modo bulk lo usan para atribuir cada fallo a su ítem.
func ErrorCode(err error) string {
	var insuf *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, domain.ErrProductNotFound):
		return "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.As(err, &insuf), errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	default:
		return "VALIDATION"
	}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:          o.ID,
		ProductID:   o.ProductID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		Status:      o.Status,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
		ShippedAt:   o.ShippedAt,
	}
}
