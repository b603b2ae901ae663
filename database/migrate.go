package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"learnhub_backend/internal/models"
)

// Connect открывает соединение с БД по драйверу из конфигурации
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate прогоняет автомиграцию всех моделей
func Migrate(db *gorm.DB) error {
	// Расширение для uuid_generate_v4 в Postgres
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			return fmt.Errorf("failed to create uuid extension: %w", err)
		}
	}

	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.UserRole{},
		&models.RefreshToken{},
		&models.ContactMessage{},
		&models.Media{},
	)
}
