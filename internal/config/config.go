package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

type Config struct {
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	JWT_SECRET    string
	KAFKA_ADDRESS string
	SMTP_HOST     string
	SMTP_PORT     string
	SMTP_USER     string
	SMTP_PASSWORD string
	MAIL_FROM     string
	LOG_LEVEL     string
	HTTP_ADDR     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       os.Getenv("DB_PORT"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		SMTP_HOST:     os.Getenv("SMTP_HOST"),
		SMTP_PORT:     os.Getenv("SMTP_PORT"),
		SMTP_USER:     os.Getenv("SMTP_USER"),
		SMTP_PASSWORD: os.Getenv("SMTP_PASSWORD"),
		MAIL_FROM:     os.Getenv("MAIL_FROM"),
		LOG_LEVEL:     os.Getenv("LOG_LEVEL"),
		HTTP_ADDR:     os.Getenv("HTTP_ADDR"),
	}
	if config.HTTP_ADDR == "" {
		config.HTTP_ADDR = ":8080"
	}

	return config, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedRoles(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartDetail{},
		&models.Order{},
		&models.OrderDetail{},
		&models.Coupon{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
		&models.Review{},
		&models.Address{},
		&models.Wishlist{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedRoles makes sure the default roles exist so registration can always
// attach the USER role.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: "USER", Description: "Default customer role"},
		{ID: "ADMIN", Description: "Administrator role"},
	}
	for i := range roles {
		if err := db.Where("id = ?", roles[i].ID).FirstOrCreate(&roles[i]).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", roles[i].ID, err)
		}
	}
	return nil
}
