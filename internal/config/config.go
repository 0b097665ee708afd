package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string

	// Política de reparto de ganancias (constantes de negocio, no calculadas)
	SellerShare        float64 // parte del vendedor sobre la ganancia bruta
	OwnerShare         float64 // parte del pozo de dueños sobre la ganancia bruta
	OwnerBonusFraction float64 // bono sobre el pozo de dueños

	// Si está activo, las mermas también descuentan stock (la conducta
	// histórica es solo registrarlas; ver DESIGN.md)
	MermasDescuentanStock bool
}

func Load() *Config {
	// .env es opcional, en producción las variables vienen del entorno
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:           getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=caja_maestra port=5432 sslmode=disable"),
		CORSOrigins:           getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		SellerShare:           getEnvFloat("PARTE_VENDEDOR", 0.50),
		OwnerShare:            getEnvFloat("PARTE_DUENOS", 0.50),
		OwnerBonusFraction:    getEnvFloat("BONO_FRACCION_DUENOS", 0.20),
		MermasDescuentanStock: getEnvBool("MERMAS_DESCUENTAN_STOCK", false),
	}

	if cfg.SellerShare < 0 || cfg.OwnerShare < 0 || cfg.SellerShare+cfg.OwnerShare > 1.000001 {
		log.Fatalf("[FATAL] Reparto inválido: PARTE_VENDEDOR=%.2f PARTE_DUENOS=%.2f (la suma no puede superar 1)", cfg.SellerShare, cfg.OwnerShare)
	}
	if cfg.OwnerBonusFraction < 0 || cfg.OwnerBonusFraction > 1 {
		log.Fatalf("[FATAL] BONO_FRACCION_DUENOS=%.2f inválido (debe estar entre 0 y 1)", cfg.OwnerBonusFraction)
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=caja_maestra port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usa el valor por defecto, definí tu propia conexión Postgres para producción.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("[FATAL] %s=%q no es un número válido", key, v)
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("[FATAL] %s=%q no es booleano (true/false)", key, v)
	}
	return b
}
