package main

import (
	"log"
	"strings"

	"github.com/teaseong5-stack/azit-erp-backend/internal/accounting"
	"github.com/teaseong5-stack/azit-erp-backend/internal/audit"
	"github.com/teaseong5-stack/azit-erp-backend/internal/auth"
	"github.com/teaseong5-stack/azit-erp-backend/internal/config"
	"github.com/teaseong5-stack/azit-erp-backend/internal/customer"
	"github.com/teaseong5-stack/azit-erp-backend/internal/dashboard"
	"github.com/teaseong5-stack/azit-erp-backend/internal/database"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"
	"github.com/teaseong5-stack/azit-erp-backend/internal/partner"
	"github.com/teaseong5-stack/azit-erp-backend/internal/reservation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // bulk XLSX uploads
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

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/token", auth.LoginHandler(cfg))
	api.Post("/auth/token/refresh", auth.RefreshHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Get("/users", auth.ListUsersHandler())

	// Customers
	protected.Get("/customers", customer.ListHandler())
	protected.Post("/customers", customer.CreateHandler())
	protected.Post("/customers/bulk", customer.BulkImportHandler())
	protected.Get("/customers/:id", customer.GetHandler())
	protected.Put("/customers/:id", customer.UpdateHandler())
	protected.Delete("/customers/:id", customer.DeleteHandler())

	// Partners
	protected.Get("/partners", partner.ListHandler())
	protected.Post("/partners", partner.CreateHandler())
	protected.Get("/partners/:id", partner.GetHandler())
	protected.Put("/partners/:id", partner.UpdateHandler())
	protected.Delete("/partners/:id", partner.DeleteHandler())

	// Reservations (static paths before :id)
	protected.Get("/reservations", reservation.ListHandler())
	protected.Get("/reservations/all", reservation.ListAllHandler())
	protected.Get("/reservations/summary", reservation.SummaryHandler())
	protected.Get("/reservations/export/csv", reservation.ExportCSVHandler())
	protected.Post("/reservations", reservation.CreateHandler())
	protected.Post("/reservations/bulk", reservation.BulkImportHandler())
	protected.Post("/reservations/bulk-file", reservation.BulkFileHandler())
	protected.Post("/reservations/bulk-delete",
		auth.RequireRole(models.RoleAdmin), reservation.BulkDeleteHandler())
	protected.Get("/reservations/:id", reservation.GetHandler())
	protected.Put("/reservations/:id", reservation.UpdateHandler())
	protected.Delete("/reservations/:id", reservation.DeleteHandler())

	// Accounting ledger
	protected.Get("/transactions", accounting.ListHandler())
	protected.Get("/transactions/summary", accounting.SummaryHandler())
	protected.Post("/transactions", accounting.CreateHandler())
	protected.Get("/transactions/:id", accounting.GetHandler())
	protected.Put("/transactions/:id",
		auth.RequireRole(models.RoleAdmin), accounting.UpdateHandler())
	protected.Delete("/transactions/:id",
		auth.RequireRole(models.RoleAdmin), accounting.DeleteHandler())

	// Dashboards
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())
	protected.Get("/dashboard/booking-board", dashboard.BookingBoardHandler())

	// Audit logs
	protected.Get("/audit-logs",
		auth.RequireRole(models.RoleAdmin), audit.ListHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
