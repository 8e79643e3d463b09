package cart

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el ajuste de stock y la
// escritura del carrito de una misma operación sean una unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error) error
}
