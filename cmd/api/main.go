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

	"github.com/jhoicas/charity-reports-api/internal/application/export"
	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
	"github.com/jhoicas/charity-reports-api/internal/infrastructure/cache"
	"github.com/jhoicas/charity-reports-api/internal/infrastructure/filestore"
	"github.com/jhoicas/charity-reports-api/internal/infrastructure/locale"
	"github.com/jhoicas/charity-reports-api/internal/infrastructure/metrics"
	"github.com/jhoicas/charity-reports-api/internal/infrastructure/postgres"
	"github.com/jhoicas/charity-reports-api/internal/infrastructure/render"
	httpRouter "github.com/jhoicas/charity-reports-api/internal/interfaces/http"
	"github.com/jhoicas/charity-reports-api/pkg/config"
	"github.com/jhoicas/charity-reports-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("locale", cfg.Locale.Tag).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de reportes: Redis si está configurado, si no memoria del proceso
	var reportCache reporting.ReportCache
	if cfg.Redis.Enabled() {
		rc, err := cache.NewRedisReportCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rc.Close()
		reportCache = rc
	} else {
		log.Warn().Msg("REDIS_ADDR vacío, usando caché en memoria")
		reportCache = cache.NewMemoryReportCache(256)
	}

	prom := metrics.New()

	reportUC := reporting.NewReportUseCase(reporting.Deps{
		Orders:    postgres.NewOrderRepository(pool),
		Donations: postgres.NewDonationRepository(pool),
		Needs:     postgres.NewNeedRepository(pool),
		Products:  postgres.NewProductRepository(pool),
		Charities: postgres.NewCharityRepository(pool),
		Cache:     reportCache,
		CacheTTL:  cfg.Redis.TTL,
		Metrics:   prom,
		Logger:    log.With().Str("component", "reporting").Logger(),
	})

	formatter := locale.New(cfg.Locale.Tag)
	renderers, err := render.NewRenderers(formatter, cfg.Locale.FontPath)
	if err != nil {
		log.Fatal().Err(err).Str("font", cfg.Locale.FontPath).Msg("inicializar renderizadores")
	}
	store, err := filestore.NewLocalStore(cfg.Export.Dir, log.With().Str("component", "filestore").Logger())
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Export.Dir).Msg("directorio de exportaciones")
	}

	exportUC := export.NewExportUseCase(export.Deps{
		Reports:   reportUC,
		Renderers: renderers,
		Store:     store,
		BaseURL:   cfg.Export.BaseURL,
		Metrics:   prom,
		Logger:    log.With().Str("component", "export").Logger(),
	})

	// WriteTimeout holgado: un PDF grande puede tardar hasta RequestTimeout
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.HTTP.RequestTimeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(prom.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Charity Reports API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", prom.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Reports:   httpRouter.NewReportHandler(reportUC, cfg.HTTP.RequestTimeout, log.Zerolog()),
		Exports:   httpRouter.NewExportHandler(exportUC, cfg.HTTP.RequestTimeout, cfg.Export.RetentionDays, log.Zerolog()),
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
