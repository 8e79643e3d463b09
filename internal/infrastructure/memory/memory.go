// Package memory implementa los puertos de persistencia en memoria, para
// tests y desarrollo sin base de datos. La disciplina de bloqueo replica a la
// de PostgreSQL: TxRunner serializa las transacciones completas (el análogo
// del FOR UPDATE sobre la fila del producto) y restaura un snapshot si el
// callback falla (el análogo del rollback).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// Store guarda productos y carritos en memoria.
type Store struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	carts    map[string]*entity.Cart
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		carts:    make(map[string]*entity.Cart),
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Photos = append([]string(nil), p.Photos...)
	return &cp
}

func cloneCart(c *entity.Cart) *entity.Cart {
	cc := *c
	cc.Items = append([]entity.LineItem(nil), c.Items...)
	return &cc
}

func (s *Store) snapshot() (map[string]*entity.Product, map[string]*entity.Cart) {
	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		products[id] = cloneProduct(p)
	}
	carts := make(map[string]*entity.Cart, len(s.carts))
	for k, c := range s.carts {
		carts[k] = cloneCart(c)
	}
	return products, carts
}

// SeedProduct inserta o reemplaza un producto directamente (solo setup).
func (s *Store) SeedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduct(p)
}

// ProductStock devuelve el stock actual de un producto (solo aserciones).
func (s *Store) ProductStock(id string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.products[id]; ok {
		return p.Stock
	}
	return 0
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if p, ok := r.store.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) AdjustStock(productID string, delta int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += delta
	return nil
}

func (r *ProductRepo) List(query string, limit, offset int) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.store.products {
		list = append(list, cloneProduct(p))
	}
	return list, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	return r.Create(product)
}

func (r *ProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación en memoria de CartRepository.
type CartRepo struct {
	store *Store
}

// NewCartRepository construye el adaptador.
func NewCartRepository(store *Store) *CartRepo {
	return &CartRepo{store: store}
}

func (r *CartRepo) Get(userKey string) (*entity.Cart, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if c, ok := r.store.carts[userKey]; ok {
		return cloneCart(c), nil
	}
	return nil, nil
}

func (r *CartRepo) Save(cart *entity.Cart) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.carts[cart.UserKey] = cloneCart(cart)
	return nil
}

var _ cart.TxRunner = (*TxRunner)(nil)

// TxRunner serializa transacciones sobre el Store y revierte al snapshot
// previo si el callback devuelve error.
type TxRunner struct {
	txMu  sync.Mutex
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn bajo exclusión mutua con rollback por snapshot.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.store.mu.RLock()
	products, carts := r.store.snapshot()
	r.store.mu.RUnlock()

	if err := fn(NewProductRepository(r.store), NewCartRepository(r.store)); err != nil {
		r.store.mu.Lock()
		r.store.products = products
		r.store.carts = carts
		r.store.mu.Unlock()
		return err
	}
	return nil
}
