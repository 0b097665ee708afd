package web

import (
	"errors"
	"fmt"
	"time"

	"caja-maestra-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// HTTPError traduce los errores tipados del libro a respuestas fiber.
// Cada handler llama esto una sola vez, al final de la operación.
func HTTPError(err error) error {
	var (
		validation  *ledger.ValidationError
		duplicate   *ledger.DuplicateNameError
		notFound    *ledger.NotFoundError
		noStock     *ledger.InsufficientStockError
		noCapital   *ledger.InsufficientCapitalError
		referential *ledger.ReferentialIntegrityError
		storage     *ledger.StorageError
	)

	switch {
	case errors.As(err, &validation):
		return fiber.NewError(fiber.StatusBadRequest, validation.Reason)
	case errors.As(err, &duplicate):
		return fiber.NewError(fiber.StatusConflict, duplicate.Error())
	case errors.As(err, &notFound):
		return fiber.NewError(fiber.StatusNotFound, notFound.Error())
	case errors.As(err, &noStock):
		return fiber.NewError(fiber.StatusConflict, noStock.Error())
	case errors.As(err, &noCapital):
		return fiber.NewError(fiber.StatusConflict, noCapital.Error())
	case errors.As(err, &referential):
		return fiber.NewError(fiber.StatusConflict, referential.Error())
	case errors.As(err, &storage):
		return fiber.NewError(fiber.StatusInternalServerError, "Error de almacenamiento")
	default:
		return err
	}
}

// ParseDay interpreta una fecha "YYYY-MM-DD". Vacío devuelve hoy a las
// 00:00 (las operaciones se registran por día calendario).
//
// Todas las fechas viven en la zona local: una fecha explícita tiene que
// caer en el mismo instante que el default "hoy" y que las ventanas de
// reporte, si no el mismo día calendario se parte en dos.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return ledger.Day(time.Now()), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, el formato es 'YYYY-MM-DD'")
	}
	return d, nil
}

// ParseRange lee los parámetros opcionales from/to de la query. Un extremo
// ausente queda en cero (sin cota).
func ParseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	var from, to time.Time

	if s := c.Query("from"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return from, to, fiber.NewError(fiber.StatusBadRequest, "from inválido, el formato es 'YYYY-MM-DD'")
		}
		from = d
	}
	if s := c.Query("to"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return from, to, fiber.NewError(fiber.StatusBadRequest, "to inválido, el formato es 'YYYY-MM-DD'")
		}
		to = d
	}
	return from, to, nil
}

// WindowFrom resuelve la ventana de reporte desde la query:
// mode=today (solo hoy), mode=days&days=N (últimos N días, inclusive) o
// mode=all / sin mode (todo el historial). Devuelve la cota inferior;
// cero significa sin cota.
func WindowFrom(c *fiber.Ctx) (time.Time, error) {
	today := ledger.Day(time.Now())

	switch mode := c.Query("mode"); mode {
	case "", "all":
		return time.Time{}, nil
	case "today":
		return today, nil
	case "days":
		var days int
		if _, err := fmt.Sscan(c.Query("days"), &days); err != nil || days < 1 {
			return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "days debe ser un entero mayor a cero")
		}
		return today.AddDate(0, 0, -days), nil
	default:
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "mode inválido (today|days|all)")
	}
}
