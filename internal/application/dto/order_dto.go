package dto

import "time"

// PlaceOrderRequest entrada para colocar una orden (un ítem).
type PlaceOrderRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name,omitempty"`
	Quantity    int64      `json:"quantity"`
	Status      string     `json:"status"`
	CreatedBy   *string    `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
}

// BulkItemError error atribuible a un ítem del lote (Index es la posición de
// entrada, base cero).
type BulkItemError struct {
	Index   int    `json:"index"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkOrderResponse resultado de una colocación masiva (best-effort):
// Created conserva el orden de entrada de los ítems exitosos; Errors lista los
// fallidos con su índice. Éxito parcial no es un error global.
type BulkOrderResponse struct {
	Success bool            `json:"success"`
	Created []OrderResponse `json:"created"`
	Errors  []BulkItemError `json:"errors,omitempty"`
	Message string          `json:"message"`
}

// StockErrorResponse cuerpo de error para stock insuficiente: además del
// código trae el disponible actual, para que el cliente pueda reintentar.
type StockErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available int64  `json:"available"`
}

// UpdateOrderStatusRequest entrada para editar el estado de una orden.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderExportRow fila para exportación CSV/PDF de órdenes.
type OrderExportRow struct {
	OrderID     string
	ProductName string
	Quantity    int64
	Status      string
	CreatedBy   string // "N/A" si el creador fue borrado
	CreatedAt   time.Time
	ShippedAt   *time.Time
}
