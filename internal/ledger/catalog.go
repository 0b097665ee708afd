package ledger

import (
	"errors"
	"strings"

	"caja-maestra-backend/internal/models"

	"gorm.io/gorm"
)

type ProductFilter int

const (
	FilterAll ProductFilter = iota
	FilterInStock
)

// AddProduct da de alta un producto en el catálogo y devuelve su id.
// El precio de venta debe cubrir el costo al momento del alta; como no hay
// operación de edición, la regla no se re-verifica después.
func AddProduct(db *gorm.DB, name string, cost, salePrice float64, initialStock int) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &ValidationError{Reason: "el nombre no puede estar vacío"}
	}
	if cost < 0 {
		return 0, &ValidationError{Reason: "el costo no puede ser negativo"}
	}
	if salePrice < 0 {
		return 0, &ValidationError{Reason: "el precio de venta no puede ser negativo"}
	}
	if salePrice < cost {
		return 0, &ValidationError{Reason: "el precio de venta no puede ser menor al costo"}
	}
	if initialStock < 0 {
		return 0, &ValidationError{Reason: "el stock inicial no puede ser negativo"}
	}

	// Chequeo exacto (sensible a mayúsculas), espejo de la constraint UNIQUE
	var existing models.Product
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return 0, &DuplicateNameError{Name: name}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, storageErr("buscar producto por nombre", err)
	}

	prod := models.Product{
		Name:      name,
		Cost:      cost,
		SalePrice: salePrice,
		Stock:     initialStock,
	}
	if err := db.Create(&prod).Error; err != nil {
		// Carrera con otro alta del mismo nombre: la constraint manda
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, &DuplicateNameError{Name: name}
		}
		return 0, storageErr("crear producto", err)
	}

	return prod.ID, nil
}

// RemoveProduct borra un producto del catálogo. Si alguna venta lo
// referencia el borrado se rechaza; las ventas son el historial contable y
// no pueden quedar colgando.
func RemoveProduct(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// lock de fila: una venta concurrente sobre el mismo producto
		// espera y después encuentra el producto borrado (o bloquea el
		// borrado si llegó primero)
		var prod models.Product
		if err := lockForUpdate(tx).First(&prod, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{ProductID: id}
			}
			return storageErr("buscar producto", err)
		}

		var sales int64
		if err := tx.Model(&models.Sale{}).Where("product_id = ?", id).Count(&sales).Error; err != nil {
			return storageErr("contar ventas del producto", err)
		}
		if sales > 0 {
			return &ReferentialIntegrityError{ProductID: id, Sales: sales}
		}

		if err := tx.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return storageErr("borrar producto", err)
		}
		return nil
	})
}

// ListProducts devuelve el catálogo ordenado por nombre.
func ListProducts(db *gorm.DB, filter ProductFilter) ([]models.Product, error) {
	dbq := db.Model(&models.Product{})
	if filter == FilterInStock {
		dbq = dbq.Where("stock > 0")
	}

	var products []models.Product
	if err := dbq.Order("name asc").Find(&products).Error; err != nil {
		return nil, storageErr("listar productos", err)
	}
	return products, nil
}
