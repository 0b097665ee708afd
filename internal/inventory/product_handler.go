package inventory

import (
	"fmt"

	"caja-maestra-backend/internal/audit"
	"caja-maestra-backend/internal/database"
	"caja-maestra-backend/internal/ledger"
	"caja-maestra-backend/internal/models"
	"caja-maestra-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Cost      float64 `json:"cost"`
	SalePrice float64 `json:"sale_price"`
	Stock     int     `json:"stock"`
}

type CreateProductRequest struct {
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	SalePrice    float64 `json:"sale_price"`
	InitialStock int     `json:"initial_stock"`
}

// GET /api/products?filter=in_stock
// Sin filtro devuelve todo el catálogo; filter=in_stock solo lo vendible.
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := ledger.FilterAll
		switch c.Query("filter") {
		case "":
			// catálogo completo
		case "in_stock":
			filter = ledger.FilterInStock
		default:
			return fiber.NewError(fiber.StatusBadRequest, "filter inválido (in_stock)")
		}

		products, err := ledger.ListProducts(database.DB, filter)
		if err != nil {
			return web.HTTPError(err)
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, ProductResponse{
				ID:        p.ID,
				Name:      p.Name,
				Cost:      p.Cost,
				SalePrice: p.SalePrice,
				Stock:     p.Stock,
			})
		}
		return c.JSON(resp)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		id, err := ledger.AddProduct(database.DB, body.Name, body.Cost, body.SalePrice, body.InitialStock)
		if err != nil {
			return web.HTTPError(err)
		}

		resp := ProductResponse{
			ID:        id,
			Name:      body.Name,
			Cost:      body.Cost,
			SalePrice: body.SalePrice,
			Stock:     body.InitialStock,
		}

		if logErr := audit.WriteLog(database.DB, audit.LogOptions{
			EntityType:  "product",
			EntityID:    id,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Producto creado: %s (stock inicial %d)", body.Name, body.InitialStock),
			After:       resp,
		}); logErr != nil {
			// El log no es crítico, la operación ya está confirmada
			fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// DELETE /api/products/:id
// Rechazado con 409 si el producto tiene ventas registradas.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		// Estado previo para el log, antes de que desaparezca
		var before models.Product
		_ = database.DB.First(&before, "id = ?", id).Error

		if err := ledger.RemoveProduct(database.DB, uint(id)); err != nil {
			return web.HTTPError(err)
		}

		if logErr := audit.WriteLog(database.DB, audit.LogOptions{
			EntityType:  "product",
			EntityID:    uint(id),
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Producto borrado: %s", before.Name),
			Before:      before,
		}); logErr != nil {
			fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/maintenance/repair-stock
// Herramienta de recuperación: stocks NULL o negativos vuelven a cero.
func RepairStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fixed, err := ledger.RepairStock(database.DB)
		if err != nil {
			return web.HTTPError(err)
		}

		if fixed > 0 {
			if logErr := audit.WriteLog(database.DB, audit.LogOptions{
				EntityType:  "product",
				Action:      models.AuditActionRepair,
				Description: fmt.Sprintf("Reparación de stock: %d productos corregidos", fixed),
			}); logErr != nil {
				fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"fixed": fixed})
	}
}
