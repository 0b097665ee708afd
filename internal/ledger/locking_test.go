package ledger

import (
	"testing"

	"caja-maestra-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// Las lecturas de stock y capital dentro de una transacción tienen que
// llevar SELECT ... FOR UPDATE: con read committed (Postgres), dos ventas
// simultáneas podrían leer el mismo stock, pasar las dos el chequeo de
// disponibilidad y sobrevender. El lock de fila serializa el
// read-modify-write.
func TestLockForUpdateAddsLockingClause(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var prod models.Product
	stmt := lockForUpdate(db).Model(&models.Product{}).Where("id = ?", 1).Find(&prod).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

// sqlite no acepta la cláusula (y serializa escritores por su cuenta), así
// que ahí se omite.
func TestLockForUpdateSkipsSqlite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:lockskip?mode=memory&cache=shared"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var prod models.Product
	stmt := lockForUpdate(db).Model(&models.Product{}).Where("id = ?", 1).Find(&prod).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}
