package models

import "time"

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"     // efectivo
	PaymentTransfer PaymentMethod = "transfer" // transferencia
)

// Sale: venta registrada. Inmutable: no hay edición ni borrado.
type Sale struct {
	ID           uint `gorm:"primaryKey"`
	ProductID    uint `gorm:"index;not null"`
	Product      Product
	Date         time.Time     `gorm:"index;not null"` // día de la venta (sin hora)
	QuantitySold int           `gorm:"not null"`
	QuantityLost int           `gorm:"not null;default:0"` // mermas: solo auditoría, no descuenta stock
	Method       PaymentMethod `gorm:"size:20;not null"`   // cash / transfer
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
