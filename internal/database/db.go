package database

import (
	"fmt"
	"log"
	"time"

	"caja-maestra-backend/internal/config"
	"caja-maestra-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	// TranslateError mapea las violaciones de constraint a los errores de
	// gorm (ErrDuplicatedKey), que el libro traduce a errores de dominio
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Error de migración: %v", err)
	}

	DB = db
	log.Println("Conexión a la base de datos lista. Migración completada.")
}

// Migrate ejecuta la migración de esquema. Es idempotente: cada paso
// verifica el estado actual antes de tocar nada, en lugar de ejecutar
// ALTERs a ciegas y tragarse el error.
func Migrate(db *gorm.DB) error {
	// sales.quantity_lost (mermas) se agregó después del primer despliegue.
	// Instalaciones viejas no la tienen; las filas existentes quedan en 0.
	if db.Migrator().HasTable(&models.Sale{}) {
		if !db.Migrator().HasColumn(&models.Sale{}, "quantity_lost") {
			log.Println("Agregando columna sales.quantity_lost...")
			if err := db.Exec("ALTER TABLE sales ADD COLUMN quantity_lost BIGINT NOT NULL DEFAULT 0").Error; err != nil {
				return fmt.Errorf("no se pudo agregar sales.quantity_lost: %w", err)
			}
		}
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Sale{},
		&models.Purchase{},
		&models.CapitalBalance{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// La fila única de capital se crea en el primer arranque, en cero.
	var count int64
	if err := db.Model(&models.CapitalBalance{}).Count(&count).Error; err != nil {
		return fmt.Errorf("no se pudo verificar el capital inicial: %w", err)
	}
	if count == 0 {
		bal := models.CapitalBalance{Cash: 0, Transfer: 0, LastUpdated: time.Now()}
		if err := db.Create(&bal).Error; err != nil {
			return fmt.Errorf("no se pudo crear la fila de capital: %w", err)
		}
		log.Println("Fila de capital inicializada en cero")
	}

	return nil
}
