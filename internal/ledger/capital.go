package ledger

import (
	"errors"
	"time"

	"caja-maestra-backend/internal/models"

	"gorm.io/gorm"
)

type Balance struct {
	Cash     float64
	Transfer float64
}

// loadBalanceRow trae la fila única de capital con lock de fila (siempre
// se llama dentro de una transacción que la va a modificar), creándola en
// cero si la base es anterior al seed de arranque.
func loadBalanceRow(tx *gorm.DB) (*models.CapitalBalance, error) {
	var bal models.CapitalBalance
	err := lockForUpdate(tx).Order("id asc").First(&bal).Error
	if err == nil {
		return &bal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr("leer capital", err)
	}

	bal = models.CapitalBalance{Cash: 0, Transfer: 0, LastUpdated: time.Now()}
	if err := tx.Create(&bal).Error; err != nil {
		return nil, storageErr("crear fila de capital", err)
	}
	return &bal, nil
}

// GetBalance devuelve el capital disponible por bolsillo. Si la fila no
// existe todavía, devuelve cero sin crearla.
func GetBalance(db *gorm.DB) (Balance, error) {
	var bal models.CapitalBalance
	err := db.Order("id asc").First(&bal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Balance{}, nil
		}
		return Balance{}, storageErr("leer capital", err)
	}
	return Balance{Cash: bal.Cash, Transfer: bal.Transfer}, nil
}

// SetBalance sobrescribe el capital con los valores dados. No es un ajuste
// incremental: representa una reconciliación manual y pisa lo que haya.
func SetBalance(db *gorm.DB, cash, transfer float64, today time.Time) error {
	if cash < 0 {
		return &ValidationError{Reason: "el capital en efectivo no puede ser negativo"}
	}
	if transfer < 0 {
		return &ValidationError{Reason: "el capital por transferencia no puede ser negativo"}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		bal, err := loadBalanceRow(tx)
		if err != nil {
			return err
		}
		bal.Cash = cash
		bal.Transfer = transfer
		bal.LastUpdated = Day(today)
		if err := tx.Save(bal).Error; err != nil {
			return storageErr("guardar capital", err)
		}
		return nil
	})
}
