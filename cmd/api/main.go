package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appauth "github.com/jhoicas/Tienda-api/internal/application/auth"
	appcart "github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/authz"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/cdn"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	uploader := cdn.NewCloudinaryService(
		cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder,
	)
	allowlist := authz.NewEmailAllowlist(cfg.Admin.Emails)

	authUC := appauth.NewAuthUseCase(userRepo, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Admin.Emails)
	productUC := usecase.NewProductUseCase(productRepo, uploader, allowlist)
	cartUC := appcart.NewUseCase(txRunner, cartRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ProductUC: productUC,
		CartUC:    cartUC,
		Log:       log,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
