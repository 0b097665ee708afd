package main

import (
	"log"
	"strings"

	"caja-maestra-backend/internal/audit"
	"caja-maestra-backend/internal/cashflow"
	"caja-maestra-backend/internal/config"
	"caja-maestra-backend/internal/database"
	"caja-maestra-backend/internal/financial"
	"caja-maestra-backend/internal/inventory"
	"caja-maestra-backend/internal/purchases"
	"caja-maestra-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Catálogo
	api.Get("/products", inventory.ListProductsHandler())
	api.Post("/products", inventory.CreateProductHandler())
	api.Delete("/products/:id", inventory.DeleteProductHandler())

	// Ventas
	api.Post("/sales", sales.CreateSaleHandler(cfg))
	api.Get("/sales", sales.ListSalesHandler())

	// Compras
	api.Post("/purchases", purchases.CreatePurchaseHandler())
	api.Get("/purchases", purchases.ListPurchasesHandler())

	// Capital
	api.Get("/capital", cashflow.GetBalanceHandler())
	api.Put("/capital", cashflow.SetBalanceHandler())

	// Reportes
	api.Get("/reports/profit-sharing", financial.ProfitSharingHandler(cfg))
	api.Get("/reports/investment", financial.InvestmentHandler())
	api.Get("/reports/sales-by-method", financial.SalesByMethodHandler())
	api.Get("/reports/sales-chart", financial.SalesChartHandler())
	api.Get("/reports/sales/export", financial.ExportSalesHandler())

	// Mantenimiento
	api.Post("/maintenance/repair-stock", inventory.RepairStockHandler())

	// Auditoría
	api.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
