package repository

import "github.com/jhoicas/ordena-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// DecrementStock es el libro de stock: un read-modify-write chequeado
// atómicamente (UPDATE condicional) que garantiza stock >= 0 incluso con
// escritores concurrentes sobre el mismo producto. Ningún otro método muta stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndName(companyID, name string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByCompany(companyID string, activeOnly bool, limit, offset int) ([]*entity.Product, error)
	// DecrementStock descuenta qty si y solo si stock >= qty, en una sola
	// sentencia. Devuelve el stock resultante; si la condición falla devuelve
	// *domain.InsufficientStockError con el stock vigente (post-carrera).
	DecrementStock(productID string, qty int64) (int64, error)
	// Deactivate marca is_active=false (baja lógica) para los IDs de la empresa
	// indicada; companyID vacío omite el scoping (superusuario). Devuelve cuántos afectó.
	Deactivate(ids []string, companyID string) (int64, error)
}
