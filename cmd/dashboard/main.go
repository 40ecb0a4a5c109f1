package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/jhoicas/ox-dashboard/docs"
	"github.com/jhoicas/ox-dashboard/internal/application/auth"
	"github.com/jhoicas/ox-dashboard/internal/application/session"
	"github.com/jhoicas/ox-dashboard/internal/application/usecase"
	"github.com/jhoicas/ox-dashboard/internal/domain/repository"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/metrics"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/oxapi"
	infrapdf "github.com/jhoicas/ox-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/ox-dashboard/internal/infrastructure/tokenstore"
	httpRouter "github.com/jhoicas/ox-dashboard/internal/interfaces/http"
	"github.com/jhoicas/ox-dashboard/pkg/config"
	"github.com/jhoicas/ox-dashboard/pkg/logger"
)

// @title        OX Dashboard API
// @version      1.0
// @description  API JSON del dashboard OX (misma cookie de sesión que las pantallas).
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Str("store", cfg.Session.Store).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, closeStore, err := openTokenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Session.Store).Msg("almacenamiento de sesiones")
	}
	defer closeStore()

	registry := session.NewRegistry(store, cfg.Session.IdleTTL)
	go registry.Run(ctx, time.Minute)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := metrics.NewProm(promRegistry, registry.Len)

	api := oxapi.New(cfg.API.BaseURL, cfg.API.Timeout,
		oxapi.WithLogger(log.Named("oxapi")),
		oxapi.WithObserver(prom),
	)

	authUC := auth.NewAuthUseCase(api)
	companyUC := usecase.NewCompanyUseCase(api)
	productUC := usecase.NewProductUseCase(api, cfg.API.PageSize)

	// PDF: una página del catálogo con QR de vuelta al dashboard
	catalogUC := usecase.NewCatalogUseCase(productUC, infrapdf.NewMarotoPDFGenerator(), "Product Catalog")

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "OX Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Registry: registry,
		Session: httpRouter.SessionConfig{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
		},
		AuthUC:    authUC,
		CompanyUC: companyUC,
		ProductUC: productUC,
		CatalogUC: catalogUC,
		Metrics:   prom,
		Logger:    log,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openTokenStore abre el almacenamiento del token según SESSION_STORE.
func openTokenStore(ctx context.Context, cfg *config.Config) (repository.TokenStore, func(), error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		rdb, err := tokenstore.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return tokenstore.NewRedisStore(rdb, cfg.Redis.Prefix, cfg.Redis.TTL), func() { _ = rdb.Close() }, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		repo := postgres.NewTokenRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	default:
		return tokenstore.NewMemoryStore(), func() {}, nil
	}
}
