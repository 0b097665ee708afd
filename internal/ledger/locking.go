package ledger

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate toma el lock de fila (SELECT ... FOR UPDATE) en los
// read-modify-write de stock y capital: dos operaciones simultáneas sobre
// la misma fila se serializan en vez de leer el mismo estado y pisarse.
// sqlite no acepta la cláusula, pero tampoco la necesita: serializa los
// escritores a nivel base.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
