package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// CartHandler maneja las peticiones HTTP del carrito (protegido).
// La clave del carrito es el email del usuario autenticado.
type CartHandler struct {
	uc  *cart.UseCase
	log *logger.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.UseCase, log *logger.Logger) *CartHandler {
	return &CartHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Obtener el carrito del usuario
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetCart(c.Context(), GetUserEmail(c))
	if err != nil {
		return h.fail(c, "obtener carrito", err)
	}
	return c.JSON(toCartResponse(out, nil))
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddItemRequest  true  "productId, quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/add [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
	}
	// Sin quantity en el body se agrega una unidad; un 0 explícito llega al
	// caso de uso y se rechaza como entrada inválida.
	quantity := int64(1)
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	out, err := h.uc.AddItem(c.Context(), GetUserEmail(c), in.ProductID, quantity)
	if err != nil {
		return h.fail(c, "agregar al carrito", err)
	}
	return c.JSON(toCartResponse(out, nil))
}

// UpdateQuantity godoc
// @Summary      Fijar la cantidad de una línea (0 la elimina)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.UpdateQuantityRequest  true  "quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/update/{productId} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity es requerido"})
	}
	out, err := h.uc.UpdateQuantity(c.Context(), GetUserEmail(c), productID, *in.Quantity)
	if err != nil {
		return h.fail(c, "actualizar carrito", err)
	}
	return c.JSON(toCartResponse(out, nil))
}

// RemoveItem godoc
// @Summary      Quitar un producto del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/remove/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), GetUserEmail(c), c.Params("productId"))
	if err != nil {
		return h.fail(c, "quitar del carrito", err)
	}
	return c.JSON(toCartResponse(out, nil))
}

// Clear godoc
// @Summary      Vaciar el carrito restaurando el stock
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart/clear [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, warnings, err := h.uc.ClearCart(c.Context(), GetUserEmail(c))
	if err != nil {
		return h.fail(c, "vaciar carrito", err)
	}
	for _, w := range warnings {
		h.log.Warn().Str("user", GetUserEmail(c)).Str("product_id", w.ProductID).Msg("stock no restaurado al vaciar carrito")
	}
	return c.JSON(toCartResponse(out, warnings))
}

// fail mapea los errores de dominio al contrato HTTP: 400 validación,
// 401 sin identidad, 404 no encontrado, 409 stock insuficiente (con
// available), 500 errores de almacenamiento (logueados, nunca propagados en detalle).
func (h *CartHandler) fail(c *fiber.Ctx, op string, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		available := stockErr.Available
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente", Available: &available,
		})
	}
	switch err {
	case domain.ErrUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrInvalidProductID:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PRODUCT_ID", Message: "formato de id de producto inválido"})
	case domain.ErrProductNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
	case domain.ErrCartNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CART_NOT_FOUND", Message: "carrito no encontrado"})
	case domain.ErrItemNotInCart:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_IN_CART", Message: "el producto no está en el carrito"})
	}
	h.log.Error().Err(err).Str("op", op).Str("user_id", GetUserID(c)).Msg("error de almacenamiento en carrito")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func toCartResponse(ct *entity.Cart, warnings []cart.RestoreWarning) dto.CartResponse {
	items := make([]dto.LineItemResponse, 0, len(ct.Items))
	for _, it := range ct.Items {
		items = append(items, dto.LineItemResponse{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}
	resp := dto.CartResponse{UserKey: ct.UserKey, Items: items}
	if !ct.UpdatedAt.IsZero() {
		t := ct.UpdatedAt
		resp.UpdatedAt = &t
	}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, w.String())
	}
	return resp
}
