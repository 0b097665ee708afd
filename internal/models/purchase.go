package models

import "time"

// Purchase: compra de mercadería. Suma stock y descuenta capital. Inmutable.
type Purchase struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"index;not null"`
	Product   Product
	Date      time.Time     `gorm:"index;not null"`
	Quantity  int           `gorm:"not null"`
	UnitCost  float64       `gorm:"not null"` // costo al momento de comprar, puede diferir del costo actual del producto
	Total     float64       `gorm:"not null"` // quantity * unit_cost
	Method    PaymentMethod `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
