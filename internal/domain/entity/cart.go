package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem es una línea del carrito. Title, Price e Image son un snapshot del
// producto al momento de agregarlo; no se refrescan con cambios posteriores
// del catálogo. Quantity siempre es >= 1: reducir a 0 elimina la línea.
type LineItem struct {
	ProductID string
	Title     string
	Price     decimal.Decimal
	Image     string
	Quantity  int64
}

// Cart es el carrito de un usuario (uno por UserKey). Las líneas conservan el
// orden de inserción y hay a lo sumo una por producto.
type Cart struct {
	UserKey   string
	Items     []LineItem
	UpdatedAt time.Time
}

// NewCart crea un carrito vacío para el usuario.
func NewCart(userKey string) *Cart {
	return &Cart{UserKey: userKey, Items: []LineItem{}}
}

// Item devuelve un puntero a la línea del producto, o nil si no está en el carrito.
func (c *Cart) Item(productID string) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveItem elimina la línea del producto preservando el orden del resto.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// TotalReserved devuelve la cantidad reservada de un producto en este carrito.
func (c *Cart) TotalReserved(productID string) int64 {
	if it := c.Item(productID); it != nil {
		return it.Quantity
	}
	return 0
}
