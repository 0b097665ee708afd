package purchases

import (
	"fmt"

	"caja-maestra-backend/internal/audit"
	"caja-maestra-backend/internal/database"
	"caja-maestra-backend/internal/ledger"
	"caja-maestra-backend/internal/models"
	"caja-maestra-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

type CreatePurchaseRequest struct {
	Date      *string              `json:"date"` // "2025-12-09", vacío = hoy
	ProductID uint                 `json:"product_id"`
	Quantity  int                  `json:"quantity"`
	UnitCost  float64              `json:"unit_cost"`
	Method    models.PaymentMethod `json:"method"` // "cash" | "transfer"
}

type PurchaseResponse struct {
	ID        uint                 `json:"id"`
	Date      string               `json:"date"`
	ProductID uint                 `json:"product_id"`
	Product   string               `json:"product"`
	Quantity  int                  `json:"quantity"`
	UnitCost  float64              `json:"unit_cost"`
	Total     float64              `json:"total"`
	Method    models.PaymentMethod `json:"method"`
}

type CreatePurchaseResponse struct {
	ID         uint    `json:"id"`
	NewStock   int     `json:"new_stock"`
	TotalSpent float64 `json:"total_spent"`
}

// POST /api/purchases
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseRequest
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

		res, err := ledger.RegisterPurchase(database.DB, body.ProductID, body.Quantity,
			body.UnitCost, body.Method, date)
		if err != nil {
			return web.HTTPError(err)
		}

		if logErr := audit.WriteLog(database.DB, audit.LogOptions{
			EntityType:  "purchase",
			EntityID:    res.PurchaseID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Compra: producto %d x%d por %.2f (%s)", body.ProductID, body.Quantity, res.TotalSpent, body.Method),
			After:       body,
		}); logErr != nil {
			fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(CreatePurchaseResponse{
			ID:         res.PurchaseID,
			NewStock:   res.NewStock,
			TotalSpent: res.TotalSpent,
		})
	}
}

// GET /api/purchases?from=2025-12-01&to=2025-12-31
func ListPurchasesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := web.ParseRange(c)
		if err != nil {
			return err
		}

		list, err := ledger.ListPurchases(database.DB, from, to)
		if err != nil {
			return web.HTTPError(err)
		}

		resp := make([]PurchaseResponse, 0, len(list))
		for _, p := range list {
			resp = append(resp, PurchaseResponse{
				ID:        p.ID,
				Date:      p.Date.Format("2006-01-02"),
				ProductID: p.ProductID,
				Product:   p.Product.Name,
				Quantity:  p.Quantity,
				UnitCost:  p.UnitCost,
				Total:     p.Total,
				Method:    p.Method,
			})
		}
		return c.JSON(resp)
	}
}
