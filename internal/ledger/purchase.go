package ledger

import (
	"errors"
	"time"

	"caja-maestra-backend/internal/models"

	"gorm.io/gorm"
)

type PurchaseResult struct {
	PurchaseID uint
	NewStock   int
	TotalSpent float64
}

// RegisterPurchase registra una compra de mercadería: suma stock al
// producto y descuenta el total del bolsillo de capital que corresponde al
// método de pago. Todo o nada, en una transacción.
func RegisterPurchase(db *gorm.DB, productID uint, quantity int, unitCost float64, method models.PaymentMethod, today time.Time) (*PurchaseResult, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Reason: "la cantidad comprada debe ser mayor a cero"}
	}
	if unitCost < 0 {
		return nil, &ValidationError{Reason: "el costo unitario no puede ser negativo"}
	}
	if !validMethod(method) {
		return nil, &ValidationError{Reason: "método de pago inválido (cash|transfer)"}
	}

	total := float64(quantity) * unitCost

	var result PurchaseResult
	err := db.Transaction(func(tx *gorm.DB) error {
		// locks de fila sobre producto y capital: el chequeo del bolsillo
		// y el descuento se serializan contra otras compras
		var prod models.Product
		if err := lockForUpdate(tx).First(&prod, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{ProductID: productID}
			}
			return storageErr("buscar producto", err)
		}

		bal, err := loadBalanceRow(tx)
		if err != nil {
			return err
		}

		available := bal.Cash
		if method == models.PaymentTransfer {
			available = bal.Transfer
		}
		if total > available {
			return &InsufficientCapitalError{Method: method, Available: available}
		}

		purchase := models.Purchase{
			ProductID: productID,
			Date:      Day(today),
			Quantity:  quantity,
			UnitCost:  unitCost,
			Total:     total,
			Method:    method,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return storageErr("crear compra", err)
		}

		newStock := prod.Stock + quantity
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).
			Update("stock", newStock).Error; err != nil {
			return storageErr("actualizar stock", err)
		}

		if method == models.PaymentCash {
			bal.Cash -= total
		} else {
			bal.Transfer -= total
		}
		bal.LastUpdated = Day(today)
		if err := tx.Save(bal).Error; err != nil {
			return storageErr("actualizar capital", err)
		}

		result = PurchaseResult{PurchaseID: purchase.ID, NewStock: newStock, TotalSpent: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPurchases devuelve las compras con su producto, más viejas primero.
func ListPurchases(db *gorm.DB, from, to time.Time) ([]models.Purchase, error) {
	dbq := db.Model(&models.Purchase{}).Preload("Product")
	if !from.IsZero() {
		dbq = dbq.Where("date >= ?", Day(from))
	}
	if !to.IsZero() {
		dbq = dbq.Where("date <= ?", Day(to))
	}

	var purchases []models.Purchase
	if err := dbq.Order("date asc, id asc").Find(&purchases).Error; err != nil {
		return nil, storageErr("listar compras", err)
	}
	return purchases, nil
}
