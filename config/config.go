package config

import (
	"log"
	"os"

	"food-marketplace-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(GetEnv("JWT_SECRET", "food_marketplace_super_secret_2024"))

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	dsn := GetEnv("DB_PATH", "food_marketplace.db")

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
}

// Migrate runs the schema migration for every entity. Split out so tests can
// run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Usuario{},
		&models.Direccion{},
		&models.MetodoPago{},
		&models.Restaurante{},
		&models.ArticuloMenu{},
		&models.Orden{},
		&models.OrdenItem{},
		&models.Resena{},
		&models.Carrito{},
		&models.CarritoItem{},
	)
}
