package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL (usable
// con pool o tx). El carrito se persiste como documento: una fila en carts y
// sus líneas en cart_items; Save reemplaza las líneas completas.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de persistencia para carritos. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Get devuelve el carrito del usuario o nil si no existe.
func (r *CartRepo) Get(userKey string) (*entity.Cart, error) {
	var c entity.Cart
	err := r.q.QueryRow(context.Background(),
		`SELECT user_key, updated_at FROM carts WHERE user_key = $1`, userKey,
	).Scan(&c.UserKey, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, title, price, COALESCE(image, ''), COALESCE(quantity, 0)
		FROM cart_items WHERE user_key = $1 ORDER BY position`, userKey)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	defer rows.Close()
	c.Items = []entity.LineItem{}
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ProductID, &it.Title, &it.Price, &it.Image, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	return &c, rows.Err()
}

// Save inserta o actualiza el carrito completo (upsert) reemplazando sus líneas.
func (r *CartRepo) Save(cart *entity.Cart) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO carts (user_key, updated_at) VALUES ($1, $2)
		ON CONFLICT (user_key) DO UPDATE SET updated_at = EXCLUDED.updated_at`,
		cart.UserKey, cart.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_key = $1`, cart.UserKey); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	for i, it := range cart.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO cart_items (user_key, product_id, title, price, image, quantity, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			cart.UserKey, it.ProductID, it.Title, it.Price, it.Image, it.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}
	}
	return nil
}
