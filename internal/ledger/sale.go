package ledger

import (
	"errors"
	"time"

	"caja-maestra-backend/internal/models"

	"gorm.io/gorm"
)

type SaleResult struct {
	SaleID   uint
	NewStock int
}

// Day recorta la hora: las operaciones se registran por día calendario.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func validMethod(m models.PaymentMethod) bool {
	return m == models.PaymentCash || m == models.PaymentTransfer
}

// RegisterSale registra una venta y descuenta el stock en una sola
// transacción: o quedan la fila y el stock nuevo, o no queda nada.
//
// Las mermas (quantityLost) históricamente solo se guardan para auditoría.
// Con mermasDescuentan activo también entran en el chequeo de
// disponibilidad y en el descuento.
func RegisterSale(db *gorm.DB, productID uint, quantitySold, quantityLost int, method models.PaymentMethod, today time.Time, mermasDescuentan bool) (*SaleResult, error) {
	if quantitySold <= 0 {
		return nil, &ValidationError{Reason: "la cantidad vendida debe ser mayor a cero"}
	}
	if quantityLost < 0 {
		return nil, &ValidationError{Reason: "las mermas no pueden ser negativas"}
	}
	if !validMethod(method) {
		return nil, &ValidationError{Reason: "método de pago inválido (cash|transfer)"}
	}

	var result SaleResult
	err := db.Transaction(func(tx *gorm.DB) error {
		// lock de fila: la disponibilidad se decide sobre un stock que
		// nadie más puede tocar hasta el commit
		var prod models.Product
		if err := lockForUpdate(tx).First(&prod, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{ProductID: productID}
			}
			return storageErr("buscar producto", err)
		}

		deduct := quantitySold
		if mermasDescuentan {
			deduct += quantityLost
		}
		if deduct > prod.Stock {
			return &InsufficientStockError{Available: prod.Stock}
		}

		sale := models.Sale{
			ProductID:    productID,
			Date:         Day(today),
			QuantitySold: quantitySold,
			QuantityLost: quantityLost,
			Method:       method,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return storageErr("crear venta", err)
		}

		newStock := prod.Stock - deduct
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).
			Update("stock", newStock).Error; err != nil {
			return storageErr("actualizar stock", err)
		}

		result = SaleResult{SaleID: sale.ID, NewStock: newStock}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListSales devuelve las ventas con su producto, más viejas primero.
// from/to acotan por día, cualquiera puede ser cero.
func ListSales(db *gorm.DB, from, to time.Time) ([]models.Sale, error) {
	dbq := db.Model(&models.Sale{}).Preload("Product")
	if !from.IsZero() {
		dbq = dbq.Where("date >= ?", Day(from))
	}
	if !to.IsZero() {
		dbq = dbq.Where("date <= ?", Day(to))
	}

	var sales []models.Sale
	if err := dbq.Order("date asc, id asc").Find(&sales).Error; err != nil {
		return nil, storageErr("listar ventas", err)
	}
	return sales, nil
}
