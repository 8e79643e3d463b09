// Comando de seed: carga un catálogo de demostración para desarrollo local.
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/searchkey"
)

type demoProduct struct {
	title    string
	category string
	price    string
	stock    int64
}

var demoCatalog = []demoProduct{
	{"Camiseta básica", "Ropa", "19.99", 50},
	{"Café de origen 500g", "Alimentos", "12.50", 30},
	{"Audífonos inalámbricos", "Electrónica", "89.90", 15},
	{"Mochila urbana", "Accesorios", "45.00", 20},
	{"Botella térmica 1L", "Hogar", "24.90", 40},
	{"Lámpara de escritorio", "Hogar", "32.75", 12},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewProductRepository(pool)
	now := time.Now()
	for _, d := range demoCatalog {
		price, err := decimal.NewFromString(d.price)
		if err != nil {
			log.Fatal().Err(err).Str("title", d.title).Msg("precio inválido en catálogo demo")
		}
		p := &entity.Product{
			ID:        uuid.New().String(),
			Title:     d.title,
			Price:     price,
			Stock:     d.stock,
			Category:  d.category,
			Photos:    []string{},
			SearchKey: searchkey.ForProduct(d.title, d.category),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Create(p); err != nil {
			log.Error().Err(err).Str("title", d.title).Msg("no se pudo insertar producto demo")
			continue
		}
		log.Info().Str("id", p.ID).Str("title", p.Title).Int64("stock", p.Stock).Msg("producto demo insertado")
	}
	log.Info().Msg("seed completado")
}
