package routes

import (
	"app/handlers"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// --- Schedule Generation ---
	schedule := api.Group("/schedule")
	schedule.Post("/generate", handlers.HandleGenerateSchedule)
	schedule.Post("/resolve", handlers.HandleResolveSchedule)
	schedule.Post("/ai-draft", handlers.HandleGenerateAIDraft)
	schedule.Get("/:scheduleId", handlers.HandleGetSchedule)

	// --- Activity Catalog ---
	activities := api.Group("/activities")
	activities.Get("/", handlers.HandleSearchActivities)
	activities.Get("/:activityId", handlers.HandleGetActivity)
}
