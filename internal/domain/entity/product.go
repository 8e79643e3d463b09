package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// Stock es la cantidad disponible para reservar desde carritos; nunca puede
// quedar negativo. Las fotos son URLs ya subidas al CDN.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal // precio de venta
	Stock       int64
	Category    string
	Photos      []string
	SearchKey   string // título+categoría normalizados para búsqueda
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FirstPhoto devuelve la primera foto del producto o "" si no tiene.
func (p *Product) FirstPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0]
}
