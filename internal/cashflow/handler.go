package cashflow

import (
	"fmt"
	"time"

	"caja-maestra-backend/internal/audit"
	"caja-maestra-backend/internal/database"
	"caja-maestra-backend/internal/ledger"
	"caja-maestra-backend/internal/models"
	"caja-maestra-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

type BalanceResponse struct {
	Cash     float64 `json:"cash"`
	Transfer float64 `json:"transfer"`
}

type SetBalanceRequest struct {
	Cash     float64 `json:"cash"`
	Transfer float64 `json:"transfer"`
}

// GET /api/capital
func GetBalanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bal, err := ledger.GetBalance(database.DB)
		if err != nil {
			return web.HTTPError(err)
		}
		return c.JSON(BalanceResponse{Cash: bal.Cash, Transfer: bal.Transfer})
	}
}

// PUT /api/capital
// Sobrescribe el capital: el cuerpo trae el saldo completo deseado, no un
// delta. Es la reconciliación manual de los bolsillos.
func SetBalanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetBalanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		before, err := ledger.GetBalance(database.DB)
		if err != nil {
			return web.HTTPError(err)
		}

		if err := ledger.SetBalance(database.DB, body.Cash, body.Transfer, time.Now()); err != nil {
			return web.HTTPError(err)
		}

		if logErr := audit.WriteLog(database.DB, audit.LogOptions{
			EntityType:  "capital_balance",
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Capital ajustado: efectivo %.2f, transferencia %.2f", body.Cash, body.Transfer),
			Before:      BalanceResponse{Cash: before.Cash, Transfer: before.Transfer},
			After:       BalanceResponse(body),
		}); logErr != nil {
			fmt.Printf("No se pudo escribir el log de auditoría: %v\n", logErr)
		}

		return c.JSON(BalanceResponse(body))
	}
}
