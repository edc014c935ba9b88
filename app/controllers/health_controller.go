package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports that the server is up. Public, used by the admin
// SPA and uptime monitoring.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
