package sales

import (
	"fmt"

	"caja-maestra-backend/internal/audit"
	"caja-maestra-backend/internal/config"
	"caja-maestra-backend/internal/database"
	"caja-maestra-backend/internal/ledger"
	"caja-maestra-backend/internal/models"
	"caja-maestra-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

type CreateSaleRequest struct {
	Date         *string              `json:"date"` // "2025-12-09", vacío = hoy
	ProductID    uint                 `json:"product_id"`
	QuantitySold int                  `json:"quantity_sold"`
	QuantityLost int                  `json:"quantity_lost"` // mermas
	Method       models.PaymentMethod `json:"method"`        // "cash" | "transfer"
}

type SaleResponse struct {
	ID           uint                 `json:"id"`
	Date         string               `json:"date"`
	ProductID    uint                 `json:"product_id"`
	Product      string               `json:"product"`
	QuantitySold int                  `json:"quantity_sold"`
	QuantityLost int                  `json:"quantity_lost"`
	Method       models.PaymentMethod `json:"method"`
}

type CreateSaleResponse struct {
	ID       uint `json:"id"`
	NewStock int  `json:"new_stock"`
}

// POST /api/sales
func CreateSaleHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		var dateStr string
		if body.Date != nil {
			dateStr = *body.Date
		}
		date, err := web.ParseDay(dateStr)
		if err != nil {
			return err
		}

		res, err := ledger.RegisterSale(database.DB, body.ProductID, body.QuantitySold,
			body.QuantityLost, body.Method, date, cfg.MermasDescuentanStock)
		if err != nil {
			return web.HTTPError(err)
		}

		if logErr := audit.WriteLog(database.DB, audit.LogOptions{
			EntityType:  "sale",
			EntityID:    res.SaleID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Venta: producto %d x%d (%s), stock restante %d", body.ProductID, body.QuantitySold, body.Method, res.NewStock),
			After:       body,
		}); logErr != nil {
			fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(CreateSaleResponse{
			ID:       res.SaleID,
			NewStock: res.NewStock,
		})
	}
}

// GET /api/sales?from=2025-12-01&to=2025-12-31
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := web.ParseRange(c)
		if err != nil {
			return err
		}

		list, err := ledger.ListSales(database.DB, from, to)
		if err != nil {
			return web.HTTPError(err)
		}

		resp := make([]SaleResponse, 0, len(list))
		for _, s := range list {
			resp = append(resp, SaleResponse{
				ID:           s.ID,
				Date:         s.Date.Format("2006-01-02"),
				ProductID:    s.ProductID,
				Product:      s.Product.Name,
				QuantitySold: s.QuantitySold,
				QuantityLost: s.QuantityLost,
				Method:       s.Method,
			})
		}
		return c.JSON(resp)
	}
}
