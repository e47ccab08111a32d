package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name  string          `json:"name" validate:"required,min=1,max=255"`
	Price decimal.Decimal `json:"price"`
	Stock int64           `json:"stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Stock no se edita por aquí: solo lo muta el descuento condicional del motor de órdenes.
type UpdateProductRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Price *decimal.Decimal `json:"price"`
}

// BulkDeactivateRequest entrada para baja lógica masiva de productos.
type BulkDeactivateRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
}

// BulkDeactivateResponse resultado de la baja masiva.
type BulkDeactivateResponse struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	IsActive  bool            `json:"is_active"`
	CreatedBy *string         `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
