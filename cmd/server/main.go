package main

import (
	"log"
	"strings"

	"warehouse-backend/internal/audit"
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/backup"
	"warehouse-backend/internal/config"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	cfg := config.Load()
	database.Init(cfg)

	// Daily backup runs at startup and on /backup_db, not from a timer.
	if _, err := backup.Run(cfg.DatabasePath, cfg.BackupDir); err != nil {
		log.Println("[WARN] Startup backup failed:", err)
	}

	app := NewApp(cfg)

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

// NewApp wires the full route table. Split out of main so tests can drive the
// HTTP surface through app.Test.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Public
	app.Post("/login", auth.LoginHandler(cfg))
	app.Static("/uploads", cfg.UploadDir)

	// Everything else requires a valid token
	protected := app.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/logout", auth.LogoutHandler())
	protected.Get("/me", auth.MeHandler())
	protected.Post("/change_password", auth.ChangePasswordHandler())

	// Stock transactions
	protected.Post("/in", inventory.StockInHandler())
	protected.Post("/out", inventory.StockOutHandler(cfg))

	// Ledger
	protected.Get("/inventory", inventory.ListInventoryHandler())
	protected.Get("/edit/:item_id", inventory.GetItemHandler())
	protected.Post("/edit/:item_id", inventory.UpdateItemHandler())
	protected.Get("/export_inventory", inventory.ExportInventoryHandler())

	// Cascading lookups for the stock-out form
	protected.Get("/api/names", inventory.ListNamesHandler())
	protected.Get("/api/brands/:name", inventory.ListBrandsHandler())
	protected.Get("/api/models/:name/:brand", inventory.ListModelsHandler())
	protected.Get("/api/item/:name/:brand/:model", inventory.GetItemInfoHandler())

	// Audit trail
	protected.Get("/logs", audit.ListStockLogsHandler())

	// Maintenance
	protected.Get("/backup_db", backup.BackupHandler(cfg))

	return app
}
