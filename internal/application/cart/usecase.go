package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// UseCase coordina carrito e inventario. Mantiene el invariante
//
//	stock_actual = stock_original − Σ(cantidades reservadas en todos los carritos)
//
// aplicando cada delta de stock y la escritura del carrito dentro de una misma
// transacción, con la fila del producto bloqueada (SELECT FOR UPDATE) antes de
// verificar disponibilidad. El stock se actualiza siempre antes de persistir el
// carrito: ante un fallo parcial el sistema queda sesgado a sub-contar
// disponibilidad, nunca a sobre-reservar.
type UseCase struct {
	txRunner TxRunner
	cartRepo repository.CartRepository
}

// NewUseCase construye el coordinador.
func NewUseCase(txRunner TxRunner, cartRepo repository.CartRepository) *UseCase {
	return &UseCase{txRunner: txRunner, cartRepo: cartRepo}
}

// RestoreWarning registra un fallo parcial al devolver stock durante un clear.
type RestoreWarning struct {
	ProductID string
	Reason    string
}

func (w RestoreWarning) String() string {
	return fmt.Sprintf("producto %s: %s", w.ProductID, w.Reason)
}

// GetCart devuelve el carrito del usuario, o un carrito vacío si no existe.
// Sin efectos secundarios sobre el stock.
func (uc *UseCase) GetCart(ctx context.Context, userKey string) (*entity.Cart, error) {
	if userKey == "" {
		return nil, domain.ErrUnauthorized
	}
	c, err := uc.cartRepo.Get(userKey)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return entity.NewCart(userKey), nil
	}
	return c, nil
}

// AddItem agrega quantity unidades de un producto al carrito, descontándolas
// del stock. Si la línea ya existe la verificación usa el headroom
// stock + cantidad_ya_reservada, de modo que la reserva previa del propio
// usuario no lo bloquee; solo el incremento se descuenta del stock.
func (uc *UseCase) AddItem(ctx context.Context, userKey, productID string, quantity int64) (*entity.Cart, error) {
	if userKey == "" {
		return nil, domain.ErrUnauthorized
	}
	if productID == "" || quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrInvalidProductID
	}

	var out *entity.Cart
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error {
		// Bloquea la fila del producto antes de leer el carrito: dos AddItem
		// concurrentes sobre el mismo producto se serializan aquí.
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		c, err := cartRepo.Get(userKey)
		if err != nil {
			return err
		}
		if c == nil {
			c = entity.NewCart(userKey)
		}

		if item := c.Item(productID); item != nil {
			newQty := item.Quantity + quantity
			headroom := product.Stock + item.Quantity
			if newQty > headroom {
				return &domain.InsufficientStockError{Available: headroom}
			}
			// Solo el incremento sale del stock; lo ya reservado no se re-descuenta.
			if err := productRepo.AdjustStock(productID, -quantity); err != nil {
				return err
			}
			item.Quantity = newQty
		} else {
			if quantity > product.Stock {
				return &domain.InsufficientStockError{Available: product.Stock}
			}
			if err := productRepo.AdjustStock(productID, -quantity); err != nil {
				return err
			}
			c.Items = append(c.Items, entity.LineItem{
				ProductID: product.ID,
				Title:     product.Title,
				Price:     product.Price,
				Image:     product.FirstPhoto(),
				Quantity:  quantity,
			})
		}

		c.UpdatedAt = time.Now()
		if err := cartRepo.Save(c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateQuantity fija la cantidad de una línea existente. quantity == 0
// elimina la línea devolviendo toda su reserva al stock; subir cantidad
// descuenta solo la diferencia, bajarla devuelve la diferencia.
func (uc *UseCase) UpdateQuantity(ctx context.Context, userKey, productID string, quantity int64) (*entity.Cart, error) {
	if userKey == "" {
		return nil, domain.ErrUnauthorized
	}
	if productID == "" || quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrInvalidProductID
	}

	var out *entity.Cart
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error {
		c, err := cartRepo.Get(userKey)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrCartNotFound
		}
		item := c.Item(productID)
		if item == nil {
			return domain.ErrItemNotInCart
		}

		if quantity == 0 {
			if err := productRepo.AdjustStock(productID, item.Quantity); err != nil {
				return err
			}
			c.RemoveItem(productID)
		} else if diff := quantity - item.Quantity; diff > 0 {
			product, err := productRepo.GetForUpdate(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			if diff > product.Stock {
				return &domain.InsufficientStockError{Available: product.Stock}
			}
			if err := productRepo.AdjustStock(productID, -diff); err != nil {
				return err
			}
			item.Quantity = quantity
		} else if diff < 0 {
			// Liberar siempre funciona (salvo producto borrado).
			if err := productRepo.AdjustStock(productID, -diff); err != nil {
				return err
			}
			item.Quantity = quantity
		}
		// diff == 0: sin cambio de stock, solo se refresca updatedAt.

		c.UpdatedAt = time.Now()
		if err := cartRepo.Save(c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem elimina la línea del producto devolviendo toda su reserva al stock.
func (uc *UseCase) RemoveItem(ctx context.Context, userKey, productID string) (*entity.Cart, error) {
	if userKey == "" {
		return nil, domain.ErrUnauthorized
	}
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrInvalidProductID
	}

	var out *entity.Cart
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error {
		c, err := cartRepo.Get(userKey)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrCartNotFound
		}
		item := c.Item(productID)
		if item == nil {
			return domain.ErrItemNotInCart
		}
		if err := productRepo.AdjustStock(productID, item.Quantity); err != nil {
			return err
		}
		c.RemoveItem(productID)
		c.UpdatedAt = time.Now()
		if err := cartRepo.Save(c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClearCart vacía el carrito devolviendo cada reserva a su producto. La
// restauración es mejor esfuerzo: si un producto fue borrado del catálogo su
// fallo se acumula como warning y el resto se restaura igual; la operación
// vacía el carrito aunque haya warnings.
func (uc *UseCase) ClearCart(ctx context.Context, userKey string) (*entity.Cart, []RestoreWarning, error) {
	if userKey == "" {
		return nil, nil, domain.ErrUnauthorized
	}

	var out *entity.Cart
	var warnings []RestoreWarning
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error {
		c, err := cartRepo.Get(userKey)
		if err != nil {
			return err
		}
		if c == nil {
			c = entity.NewCart(userKey)
		}
		for _, item := range c.Items {
			if err := productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
				if err == domain.ErrProductNotFound {
					warnings = append(warnings, RestoreWarning{ProductID: item.ProductID, Reason: "producto ya no existe, stock no restaurado"})
					continue
				}
				return err
			}
		}
		c.Items = []entity.LineItem{}
		c.UpdatedAt = time.Now()
		if err := cartRepo.Save(c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, warnings, nil
}
