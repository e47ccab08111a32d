package entity

import "time"

// Estados de una orden.
const (
	OrderStatusPending = "pending"
	OrderStatusSuccess = "success"
	OrderStatusFailed  = "failed"
)

// ValidOrderStatus indica si s es un estado válido de orden.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusSuccess || s == OrderStatusFailed
}

// Order representa una orden colocada contra el stock de un producto.
// Se crea en pending y pasa a success (stock descontado, ShippedAt estampado)
// dentro de la misma transacción. CreatedAt es inmutable; ShippedAt se asigna
// exactamente una vez.
//
// CompanyID es un atributo derivado: la empresa del usuario creador. Es nil si
// CreatedBy es nil (el creador fue borrado); esas órdenes quedan fuera de toda
// consulta scoped por empresa y solo las ve un superusuario.
type Order struct {
	ID            string
	ProductID     string
	Quantity      int64
	Status        string // pending, success, failed
	CreatedBy     *string
	CreatedByName string  // denormalizado para listados/export (vacío si no hay creador)
	CompanyID     *string // derivado de CreatedBy; no se persiste en orders
	ProductName   string  // denormalizado para listados/export
	CreatedAt     time.Time
	ShippedAt     *time.Time
}
