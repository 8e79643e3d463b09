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
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrInvalidProductID   = errors.New("id de producto inválido")
	ErrCartNotFound       = errors.New("carrito no encontrado")
	ErrItemNotInCart      = errors.New("el producto no está en el carrito")
)

// InsufficientStockError indica que la reserva pedida supera el stock disponible.
// Available es lo máximo que el caller podría reservar en este momento
// (al hacer top-up incluye lo que su carrito ya tiene reservado).
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente (disponible: %d)", e.Available)
}
