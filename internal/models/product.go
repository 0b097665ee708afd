package models

import "time"

type Product struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null;unique"`
	Cost      float64 `gorm:"not null"` // costo unitario actual
	SalePrice float64 `gorm:"not null"` // precio de venta unitario actual
	Stock     int     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
