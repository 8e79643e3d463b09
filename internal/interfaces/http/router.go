package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	CartUC    *cart.UseCase
	Log       *logger.Logger
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo: lectura pública, gestión solo admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	admin := products.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	admin.Post("/", productHandler.Create)
	admin.Put("/:id", productHandler.Update)
	admin.Delete("/:id", productHandler.Delete)

	// Carrito (protegido; la clave es el email del token)
	cartGroup := api.Group("/cart", AuthMiddleware(deps.JWTSecret))
	cartHandler := NewCartHandler(deps.CartUC, deps.Log)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/add", cartHandler.AddItem)
	cartGroup.Put("/update/:productId", cartHandler.UpdateQuantity)
	cartGroup.Delete("/remove/:productId", cartHandler.RemoveItem)
	cartGroup.Delete("/clear", cartHandler.Clear)
}
