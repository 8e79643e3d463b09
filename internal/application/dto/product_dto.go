package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (admin).
// Photos son URLs ya subidas al CDN (el handler sube los archivos primero).
type CreateProductRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"quantity"`
	Category    string          `json:"category"`
	Photos      []string        `json:"photos"`
}

// UpdateProductRequest entrada para actualizar un producto (admin).
// Stock se ajusta aquí solo como corrección de catálogo; las reservas de
// carrito usan su propio camino.
type UpdateProductRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int64           `json:"quantity"`
	Category    *string          `json:"category"`
	Photos      []string         `json:"photos"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"quantity"`
	Category    string          `json:"category"`
	Photos      []string        `json:"photos"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductListResponse lista de productos del catálogo.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
