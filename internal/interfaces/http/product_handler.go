package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
// Lectura pública; crear/editar/eliminar requieren permiso de gestión.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar el catálogo
// @Tags         products
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por título/categoría (insensible a acentos)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.Query("q"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto (admin)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	actor := GetUserEmail(c)
	in, err := h.parseProductForm(c, actor)
	if err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.Create(actor, *in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (admin)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetUserEmail(c), id, in)
	if err != nil {
		return h.fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (admin)
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(GetUserEmail(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductForm acepta JSON o multipart/form-data. En multipart sube cada
// archivo "photos" al CDN y reemplaza Photos por las URLs resultantes.
func (h *ProductHandler) parseProductForm(c *fiber.Ctx, actor string) (*dto.CreateProductRequest, error) {
	var in dto.CreateProductRequest
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.Contains(contentType, "multipart/form-data") {
		if err := c.BodyParser(&in); err != nil {
			return nil, domain.ErrInvalidInput
		}
		return &in, nil
	}

	in.Title = c.FormValue("title")
	in.Description = c.FormValue("description")
	in.Category = c.FormValue("category")
	if v := c.FormValue("price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		in.Price = price
	}
	if v := c.FormValue("quantity"); v != "" {
		stock, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		in.Stock = stock
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	for _, fh := range form.File["photos"] {
		f, err := fh.Open()
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		url, err := h.uc.UploadPhoto(c.Context(), actor, fh.Filename, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		in.Photos = append(in.Photos, url)
	}
	return &in, nil
}

func (h *ProductHandler) fail(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin permiso de gestión de productos"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
