package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para Cart.
// Get devuelve nil (sin error) si el usuario no tiene carrito; Save tiene
// semántica upsert y reemplaza las líneas completas (el carrito se persiste
// como documento).
type CartRepository interface {
	Get(userKey string) (*entity.Cart, error)
	Save(cart *entity.Cart) error
}
