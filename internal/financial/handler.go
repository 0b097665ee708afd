package financial

import (
	"caja-maestra-backend/internal/config"
	"caja-maestra-backend/internal/database"
	"caja-maestra-backend/internal/models"
	"caja-maestra-backend/internal/reporting"
	"caja-maestra-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

type SaleRowResponse struct {
	Date         string               `json:"date"`
	Product      string               `json:"product"`
	QuantitySold int                  `json:"quantity_sold"`
	QuantityLost int                  `json:"quantity_lost"`
	Method       models.PaymentMethod `json:"method"`
	Invested     float64              `json:"invested"`
	Sold         float64              `json:"sold"`
	Profit       float64              `json:"profit"`
}

type ProfitSharingResponse struct {
	Rows  []SaleRowResponse        `json:"rows"`
	Split *reporting.ProfitSharing `json:"split"`
}

type DailyTotalResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

func policyFromConfig(cfg *config.Config) reporting.SplitPolicy {
	return reporting.SplitPolicy{
		SellerShare:        cfg.SellerShare,
		OwnerShare:         cfg.OwnerShare,
		OwnerBonusFraction: cfg.OwnerBonusFraction,
	}
}

// GET /api/reports/profit-sharing?mode=today | mode=days&days=30 | mode=all
func ProfitSharingHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := web.WindowFrom(c)
		if err != nil {
			return err
		}

		rows, err := reporting.SalesDetail(database.DB, from)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}
		split, err := reporting.ComputeProfitSharing(database.DB, from, policyFromConfig(cfg))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el reparto")
		}

		resp := ProfitSharingResponse{
			Rows:  make([]SaleRowResponse, 0, len(rows)),
			Split: split,
		}
		for _, r := range rows {
			resp.Rows = append(resp.Rows, SaleRowResponse{
				Date:         r.Date.Format("2006-01-02"),
				Product:      r.Product,
				QuantitySold: r.QuantitySold,
				QuantityLost: r.QuantityLost,
				Method:       r.Method,
				Invested:     r.Invested,
				Sold:         r.Sold,
				Profit:       r.Profit,
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/reports/investment
// Valuación de la mercadería en mano (stock * costo actual) por producto.
func InvestmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := reporting.InvestmentByProduct(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}
		return c.JSON(rows)
	}
}

// GET /api/reports/sales-by-method?mode=days&days=7
func SalesByMethodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := web.WindowFrom(c)
		if err != nil {
			return err
		}
		rows, err := reporting.SalesByMethod(database.DB, from)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}
		return c.JSON(rows)
	}
}

// GET /api/reports/sales-chart?mode=days&days=30
// Serie diaria de lo vendido, para graficar.
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := web.WindowFrom(c)
		if err != nil {
			return err
		}
		rows, err := reporting.DailySales(database.DB, from)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}

		resp := make([]DailyTotalResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, DailyTotalResponse{
				Date:  r.Date.Format("2006-01-02"),
				Total: r.Total,
			})
		}
		return c.JSON(resp)
	}
}
