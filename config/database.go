package config

import (
	"fmt"

	"github.com/stylenest/stylenest-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection and migrates the schema
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := MigrateModels(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// MigrateModels runs AutoMigrate for every persisted model. Shared with
// the test setup, which runs against SQLite.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Variant{},
		&models.SizeOption{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.Order{},
		&models.OrderItem{},
		&models.Address{},
		&models.PaymentMethod{},
		&models.Payment{},
		&models.RewardLedger{},
		&models.RewardGrant{},
		&models.Voucher{},
		&models.UserActiveVoucher{},
		&models.ChatMessage{},
		&models.BlacklistedToken{},
	)
}
