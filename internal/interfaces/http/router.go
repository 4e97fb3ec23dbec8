package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Reports   *ReportHandler
	Exports   *ExportHandler
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(RoleAdmin, RoleCharityManager, RoleVendor)

	// Reportes: las rutas fijas antes de /:type
	reports := api.Group("/reports")
	reports.Get("/income-statement", RequireRole(RoleAdmin, RoleCharityManager), deps.Reports.IncomeStatement)
	reports.Get("/charities/:id/financials", RequireRole(RoleAdmin, RoleCharityManager), deps.Reports.CharityFinancials)
	reports.Get("/:type", anyRole, deps.Reports.Generate)

	// Exportaciones
	exports := api.Group("/exports")
	exports.Post("/", anyRole, deps.Exports.Create)
	exports.Get("/download/:filename", anyRole, deps.Exports.Download)
	exports.Delete("/cleanup", RequireRole(RoleAdmin), deps.Exports.Cleanup)
}
