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

	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
	"github.com/jhoicas/Panaderia-api/internal/application/usecase"
	"github.com/jhoicas/Panaderia-api/internal/infrastructure/cache"
	"github.com/jhoicas/Panaderia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Panaderia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Panaderia-api/internal/interfaces/http"
	"github.com/jhoicas/Panaderia-api/pkg/config"
	"github.com/jhoicas/Panaderia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		runner inventory.TxRunner
		reads  *inventory.Tx
	)
	switch cfg.App.Store {
	case "memory":
		store := memory.NewStore()
		runner, reads = store, store.Tx()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		runner, reads = postgres.NewTxRunner(pool), postgres.Bind(pool)
	}

	var invalidator inventory.CacheInvalidator = inventory.NoopInvalidator{}
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		invalidator = cache.NewRedisInvalidator(rdb)
	}

	engine := inventory.NewEngine(runner, reads, invalidator, log, inventory.ProductionConfig{
		PrimaryKeyword:    cfg.Production.PrimaryKeyword,
		VarianceTolerance: cfg.Production.VarianceTolerance,
	})

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
		Title:    "Panadería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:       engine,
		Products:     usecase.NewProductUseCase(engine.Guard, reads.Products),
		RawMaterials: usecase.NewRawMaterialUseCase(engine.Guard, reads.RawMaterials, engine.RawMaterials),
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log,
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
