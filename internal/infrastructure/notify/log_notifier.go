// Package notify implementa el sink de notificaciones de órdenes.
// La entrega real (email/SMS) está fuera del alcance: se emite el registro de
// confirmación como log estructurado, igual que el canal es best-effort —
// un fallo aquí jamás afecta la orden ya confirmada.
package notify

import (
	"context"

	"github.com/jhoicas/ordena-api/internal/application/orders"
	"github.com/jhoicas/ordena-api/pkg/logger"
)

var _ orders.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe cada confirmación de orden en el log estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify emite el registro de confirmación de una orden exitosa.
func (n *LogNotifier) Notify(_ context.Context, conf orders.OrderConfirmation) {
	n.log.Info().
		Str("event", "order_confirmation").
		Str("to", conf.Recipient).
		Str("order_id", conf.OrderID).
		Str("product", conf.ProductName).
		Int64("quantity", conf.Quantity).
		Str("unit_price", conf.UnitPrice.StringFixed(2)).
		Str("total", conf.Total.StringFixed(2)).
		Str("status", conf.Status).
		Time("shipped_at", conf.ShippedAt).
		Msg("confirmación de orden")
}
