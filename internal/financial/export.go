package financial

import (
	"fmt"
	"time"

	"caja-maestra-backend/internal/database"
	"caja-maestra-backend/internal/reporting"
	"caja-maestra-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/sales/export?mode=days&days=30
// Descarga el detalle de ventas de la ventana como planilla xlsx.
func ExportSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := web.WindowFrom(c)
		if err != nil {
			return err
		}

		rows, err := reporting.SalesDetail(database.DB, from)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"Fecha", "Producto", "Cantidad", "Mermas", "Método", "Inversión", "Venta", "Ganancia"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo armar la planilla")
			}
		}

		for i, r := range rows {
			values := []any{
				r.Date.Format("2006-01-02"),
				r.Product,
				r.QuantitySold,
				r.QuantityLost,
				string(r.Method),
				r.Invested,
				r.Sold,
				r.Profit,
			}
			for j, v := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "No se pudo armar la planilla")
				}
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo serializar la planilla")
		}

		filename := fmt.Sprintf("ventas-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(buf.Bytes())
	}
}
