package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/searchkey"
)

// ProductUseCase casos de uso del catálogo: lectura pública y CRUD admin.
// El stock reservado por carritos se ajusta vía el coordinador de carrito,
// no por aquí; Stock en Create/Update es carga/corrección de catálogo.
type ProductUseCase struct {
	repo     repository.ProductRepository
	uploader ports.ImageUploader
	authz    ports.Authorizer
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, uploader ports.ImageUploader, authz ports.Authorizer) *ProductUseCase {
	return &ProductUseCase{repo: repo, uploader: uploader, authz: authz}
}

// UploadPhoto sube una imagen de producto al CDN y devuelve su URL pública.
func (uc *ProductUseCase) UploadPhoto(ctx context.Context, actorEmail, filename string, content io.Reader) (string, error) {
	if !uc.authz.CanManageProducts(actorEmail) {
		return "", domain.ErrForbidden
	}
	return uc.uploader.Upload(ctx, filename, content)
}

// Create crea un producto nuevo del catálogo (solo admin).
func (uc *ProductUseCase) Create(actorEmail string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !uc.authz.CanManageProducts(actorEmail) {
		return nil, domain.ErrForbidden
	}
	if in.Title == "" || in.Stock < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Photos:      in.Photos,
		SearchKey:   searchkey.ForProduct(in.Title, in.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista el catálogo, con búsqueda opcional insensible a acentos.
func (uc *ProductUseCase) List(query string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(searchkey.Fold(query), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Update actualiza un producto (solo admin). Devuelve nil si no existe.
func (uc *ProductUseCase) Update(actorEmail, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !uc.authz.CanManageProducts(actorEmail) {
		return nil, domain.ErrForbidden
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if len(in.Photos) > 0 {
		product.Photos = in.Photos
	}
	product.SearchKey = searchkey.ForProduct(product.Title, product.Category)
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del catálogo (solo admin).
func (uc *ProductUseCase) Delete(actorEmail, id string) error {
	if !uc.authz.CanManageProducts(actorEmail) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Photos:      photos,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
