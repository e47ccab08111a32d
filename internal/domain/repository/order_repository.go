package repository

import (
	"time"

	"github.com/jhoicas/ordena-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
//
// Las consultas scoped por empresa hacen join por created_by: una orden cuyo
// creador fue borrado no pertenece a ninguna empresa y solo aparece en ListAll.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// MarkShipped transiciona la orden a success y estampa shipped_at.
	// Es la única mutación permitida después de Create, y ocurre en la misma
	// transacción que el descuento de stock.
	MarkShipped(orderID string, shippedAt time.Time) error
	UpdateStatus(orderID, status string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error)
	ListAll(limit, offset int) ([]*entity.Order, error)
	// Variantes sin paginar para exportación CSV/PDF.
	ListByCompanyForExport(companyID string) ([]*entity.Order, error)
	ListAllForExport() ([]*entity.Order, error)
	Delete(id string) error
}
