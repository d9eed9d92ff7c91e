package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"backoffice/database"
)

// HandleHealth reports service and database liveness.
func HandleHealth(c *fiber.Ctx) error {
	db := database.GetDB()
	if db != nil {
		if err := db.Ping(context.Background()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"message": "Database ping failed",
			})
		}
	}
	return c.JSON(fiber.Map{"success": true, "message": "ok"})
}
