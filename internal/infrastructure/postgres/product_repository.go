package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, title, description, price, COALESCE(stock, 0), category, photos, search_key, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). El stock se lee con COALESCE a 0: un valor ausente
// cuenta como cero disponible, nunca como infinito.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, title, description, price, stock, category, photos, search_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Title, product.Description, product.Price, product.Stock,
		product.Category, product.Photos, product.SearchKey, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE) para
// serializar verificación y descuento de stock dentro de la transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.get(id, true)
}

func (r *ProductRepo) get(id string, forUpdate bool) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Stock, &p.Category,
		&p.Photos, &p.SearchKey, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// AdjustStock aplica un delta atómico al stock del producto.
// Devuelve ErrProductNotFound si el producto ya no existe.
func (r *ProductRepo) AdjustStock(productID string, delta int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = COALESCE(stock, 0) + $2, updated_at = now() WHERE id = $1`,
		productID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista el catálogo; query vacío lista todo, si no filtra por search_key.
func (r *ProductRepo) List(query string, limit, offset int) ([]*entity.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if query != "" {
		sql += ` WHERE search_key LIKE '%' || $1 || '%'`
		args = append(args, query)
	}
	sql += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Stock, &p.Category,
			&p.Photos, &p.SearchKey, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET title = $2, description = $3, price = $4, stock = $5, category = $6, photos = $7, search_key = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Title, product.Description, product.Price, product.Stock,
		product.Category, product.Photos, product.SearchKey, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
