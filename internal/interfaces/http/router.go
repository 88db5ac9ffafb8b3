package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mcalvo/bracket-tracker-api/internal/application/analyzer"
	"github.com/mcalvo/bracket-tracker-api/internal/application/auth"
	"github.com/mcalvo/bracket-tracker-api/internal/application/ledger"
	"github.com/mcalvo/bracket-tracker-api/internal/application/settings"
	"github.com/mcalvo/bracket-tracker-api/internal/application/workorder"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/infrastructure/export"
	"github.com/mcalvo/bracket-tracker-api/internal/infrastructure/notify"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *ledger.StockLedgerUseCase
	WorkOrderUC *workorder.WorkOrderUseCase
	AnalyzerUC  *analyzer.SetAnalyzerUseCase
	SettingsUC  *settings.SettingsUseCase
	AuthUC      *auth.AuthUseCase
	Hub         *notify.Hub
	JWTSecret   string
	// HistoryLimit es el límite del historial cuando el cliente no pasa ?limit;
	// <= 0 usa el del ledger.
	HistoryLimit int
}

// Router registra las rutas de la API. Lecturas para cualquier usuario
// autenticado; mutaciones de stock y órdenes para operator/admin; registro de
// usuarios y configuración solo para admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin),
		authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	mutate := RequireRole(entity.RoleAdmin, entity.RoleOperator)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Parts e historial
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.AnalyzerUC, deps.SettingsUC, deps.HistoryLimit)
	parts := protected.Group("/parts")
	parts.Get("/", inventoryHandler.ListParts)
	parts.Post("/adjust", mutate, inventoryHandler.Adjust)
	parts.Post("/count", mutate, inventoryHandler.PhysicalCount)
	protected.Get("/history", inventoryHandler.History)
	protected.Get("/sets/analysis", inventoryHandler.SetAnalysis)

	// Órdenes de trabajo
	orders := protected.Group("/work-orders")
	orderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", mutate, orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/fulfillment", orderHandler.Fulfillment)
	orders.Post("/:id/complete", mutate, orderHandler.Complete)
	orders.Delete("/:id", mutate, orderHandler.Delete)

	// Configuración global
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", adminOnly, settingsHandler.Update)

	// Exports
	exportHandler := NewExportHandler(deps.LedgerUC, deps.AnalyzerUC, deps.SettingsUC,
		export.NewExcelReport(), export.NewPDFReport())
	exports := protected.Group("/export")
	exports.Get("/inventory", exportHandler.JSON)
	exports.Get("/snapshot.xlsx", exportHandler.Excel)
	exports.Get("/report.pdf", exportHandler.PDF)

	// Eventos en vivo (SSE)
	eventsHandler := NewEventsHandler(deps.Hub, deps.LedgerUC)
	protected.Get("/events", eventsHandler.Stream)
}
