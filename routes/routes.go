package routes

import (
	"backoffice/handlers"
	"backoffice/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HandleHealth)

	// --- Report Routes ---
	reports := api.Group("/reports", middleware.JWTMiddleware)
	reports.Get("/dynamic", handlers.HandleDynamicReport)
	reports.Get("/insights", handlers.HandleReportInsights)
	reports.Get("/history", middleware.AdminRequired, handlers.HandleReportHistory)

	// --- Forecast Routes ---
	forecast := api.Group("/forecast", middleware.JWTMiddleware)
	forecast.Get("/", handlers.HandleForecast)
	forecast.Post("/train", handlers.HandleTrainForecast)
}
