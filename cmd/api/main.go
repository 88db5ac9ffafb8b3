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

	"github.com/mcalvo/bracket-tracker-api/internal/application/analyzer"
	"github.com/mcalvo/bracket-tracker-api/internal/application/auth"
	"github.com/mcalvo/bracket-tracker-api/internal/application/ledger"
	appsettings "github.com/mcalvo/bracket-tracker-api/internal/application/settings"
	"github.com/mcalvo/bracket-tracker-api/internal/application/workorder"
	infranotify "github.com/mcalvo/bracket-tracker-api/internal/infrastructure/notify"
	"github.com/mcalvo/bracket-tracker-api/internal/infrastructure/postgres"
	"github.com/mcalvo/bracket-tracker-api/internal/infrastructure/webhook"
	httpRouter "github.com/mcalvo/bracket-tracker-api/internal/interfaces/http"
	"github.com/mcalvo/bracket-tracker-api/pkg/config"
	"github.com/mcalvo/bracket-tracker-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	partRepo := postgres.NewPartRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	orderRepo := postgres.NewWorkOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	settingsUC, err := appsettings.NewSettingsUseCase(settingsRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar configuración de stock")
	}

	// Notifiers: log estructurado + hub SSE + webhook de alertas. El webhook lee
	// la URL y el umbral vigentes en cada evento, así los cambios de settings
	// aplican sin reiniciar.
	hub := infranotify.NewHub()
	webhookNotifier := webhook.NewNotifier(log,
		settingsUC.WebhookURL,
		func() int64 { critical, _ := settingsUC.Thresholds(); return critical },
	)
	notifier := infranotify.Composite{
		infranotify.NewLogNotifier(log),
		hub,
		webhookNotifier,
	}

	ledgerUC := ledger.NewStockLedgerUseCase(txRunner, partRepo, txRepo, notifier)
	workOrderUC := workorder.NewWorkOrderUseCase(txRunner, ledgerUC, orderRepo, partRepo, notifier)
	analyzerUC := analyzer.NewSetAnalyzerUseCase(partRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
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
		Title:    "Bracket Tracker API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:     ledgerUC,
		WorkOrderUC:  workOrderUC,
		AnalyzerUC:   analyzerUC,
		SettingsUC:   settingsUC,
		AuthUC:       authUC,
		Hub:          hub,
		JWTSecret:    cfg.JWT.Secret,
		HistoryLimit: cfg.Stock.HistoryLimit,
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
