package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una empresa.
// (CompanyID, Name) es único. Stock nunca es negativo: el descuento se hace con
// un UPDATE condicional dentro de la transacción de la orden, jamás con
// leer-y-escribir por separado. La baja es lógica (IsActive=false).
type Product struct {
	ID        string
	CompanyID string
	Name      string
	Price     decimal.Decimal // 2 decimales
	Stock     int64
	IsActive  bool
	CreatedBy *string // referencia débil: sobrevive al borrado del usuario
	CreatedAt time.Time
	UpdatedAt time.Time
}
