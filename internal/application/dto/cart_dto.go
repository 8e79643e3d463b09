package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Los nombres de campo JSON (productId, quantity, ...) son contrato con los
// clientes web y móvil existentes; no cambiarlos.

// AddItemRequest entrada para agregar un producto al carrito.
// Quantity es puntero para distinguir campo ausente (por defecto 1) de un
// 0 explícito, que es inválido al agregar.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int64 `json:"quantity"`
}

// UpdateQuantityRequest entrada para fijar la cantidad de una línea.
// Puntero para distinguir "0 explícito" (eliminar la línea) de campo ausente.
type UpdateQuantityRequest struct {
	Quantity *int64 `json:"quantity"`
}

// LineItemResponse línea del carrito en respuestas.
type LineItemResponse struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int64           `json:"quantity"`
}

// CartResponse carrito completo en respuestas. Warnings acumula fallos
// parciales al restaurar stock durante un clear (mejor esfuerzo).
type CartResponse struct {
	UserKey   string             `json:"userKey,omitempty"`
	Items     []LineItemResponse `json:"items"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
	Warnings  []string           `json:"warnings,omitempty"`
}
