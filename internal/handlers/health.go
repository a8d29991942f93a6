package handlers

import (
	"taskhive/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports database and cache reachability.
func HealthCheck(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok"}

	if repositories.DB != nil {
		sqlDB, err := repositories.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			status["database"] = "down"
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		status["database"] = "up"
	}

	if repositories.CacheService != nil {
		if err := repositories.CacheService.HealthCheck(c.Context()); err != nil {
			status["cache"] = "down"
		} else {
			status["cache"] = "up"
		}
	}

	return c.JSON(status)
}
