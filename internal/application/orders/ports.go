package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor de órdenes:
// si fn retorna error no queda residuo (ni fila de orden ni descuento parcial).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// OrderConfirmation registro de confirmación emitido por cada orden exitosa.
type OrderConfirmation struct {
	Recipient   string
	OrderID     string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // UnitPrice * Quantity
	Status      string
	ShippedAt   time.Time
}

// Notifier es el sink de notificaciones: fire-and-forget, best-effort.
// Un fallo aquí jamás revierte la orden ya confirmada, por eso no retorna error.
type Notifier interface {
	Notify(ctx context.Context, conf OrderConfirmation)
}

// ReportGenerator genera la representación PDF del reporte de órdenes.
type ReportGenerator interface {
	GenerateOrdersPDF(ctx context.Context, title string, rows []dto.OrderExportRow) ([]byte, error)
}
