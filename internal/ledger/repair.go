package ledger

import (
	"log"

	"gorm.io/gorm"
)

// RepairStock es una herramienta de mantenimiento: lleva a cero los stocks
// corruptos (NULL o negativos) que pudieron entrar editando la base por
// fuera del sistema. Devuelve cuántos productos se corrigieron; no toca
// nada más.
func RepairStock(db *gorm.DB) (int64, error) {
	res := db.Exec("UPDATE products SET stock = 0 WHERE stock IS NULL OR stock < 0")
	if res.Error != nil {
		return 0, storageErr("reparar stock", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Printf("Reparación de stock: %d productos llevados a cero", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
