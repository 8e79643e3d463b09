package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y AdjustStock son los únicos caminos válidos para tocar Stock
// desde el coordinador de carritos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar la verificación y el descuento de stock dentro de la tx.
	GetForUpdate(id string) (*entity.Product, error)
	// AdjustStock aplica un delta atómico al stock (negativo reserva,
	// positivo libera). Devuelve ErrProductNotFound si el producto no existe.
	AdjustStock(productID string, delta int64) error
	List(query string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
