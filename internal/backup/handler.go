package backup

import (
	"warehouse-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// GET /backup_db
func BackupHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, err := Run(cfg.DatabasePath, cfg.BackupDir)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Backup failed")
		}
		return c.JSON(fiber.Map{
			"message": "Database backed up",
			"file":    target,
		})
	}
}
