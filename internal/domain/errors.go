package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Taxonomía del motor de órdenes.
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrBulkAllFailed     = errors.New("ningún ítem del lote pudo procesarse")
)

// InsufficientStockError indica que la cantidad pedida supera el stock disponible.
// Available es el stock vigente al momento del rechazo (post-carrera si se perdió
// la condición dentro de la transacción), nunca el valor leído antes del chequeo.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d", e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError es el catch-all para violaciones de constraint inesperadas.
// El detalle se conserva para diagnóstico; nunca se descarta en silencio.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return "validación fallida: " + e.Detail
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
