package ledger

import (
	"fmt"

	"caja-maestra-backend/internal/models"
)

// ValidationError: entrada con forma o rango inválido. Se detecta antes de
// escribir nada.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("ya existe un producto llamado %q", e.Name)
}

type NotFoundError struct {
	ProductID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("producto %d no encontrado", e.ProductID)
}

// InsufficientStockError: la venta pide más unidades de las que hay.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: quedan %d unidades", e.Available)
}

// InsufficientCapitalError: la compra supera el bolsillo del método elegido.
type InsufficientCapitalError struct {
	Method    models.PaymentMethod
	Available float64
}

func (e *InsufficientCapitalError) Error() string {
	return fmt.Sprintf("capital insuficiente en %s: disponible %.2f", e.Method, e.Available)
}

// ReferentialIntegrityError: no se puede borrar un producto con ventas.
type ReferentialIntegrityError struct {
	ProductID uint
	Sales     int64
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("el producto %d tiene %d ventas registradas y no puede borrarse", e.ProductID, e.Sales)
}

// StorageError: fallo del almacenamiento subyacente. La transacción ya hizo
// rollback cuando este error llega al llamador.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("error de almacenamiento en %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
