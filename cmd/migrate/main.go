// migrate aplica el esquema del motor de inventario sobre la base configurada.
//
// Uso: go run ./cmd/migrate
// Lee la misma configuración que la API (DATABASE_URL o DB_*). El esquema es idempotente.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/Panaderia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Panaderia-api/pkg/config"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Msg("esquema aplicado")
}
