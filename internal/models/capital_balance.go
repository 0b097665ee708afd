package models

import "time"

// CapitalBalance: capital disponible para compras, en dos bolsillos.
// Existe una sola fila lógica, creada en el primer arranque y
// sobrescrita en cada ajuste manual.
type CapitalBalance struct {
	ID          uint    `gorm:"primaryKey"`
	Cash        float64 `gorm:"not null;default:0"` // efectivo
	Transfer    float64 `gorm:"not null;default:0"` // transferencia
	LastUpdated time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
