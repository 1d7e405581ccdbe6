package handlers

import "github.com/gofiber/fiber/v2"

// HandleHealthCheck reports that the server is up.
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(200).JSON(fiber.Map{"status": "ok"})
}
