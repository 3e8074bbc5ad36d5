package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Adhisheshu1210/sb-works-backend/internal/models"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Freelancer{},
		&models.Project{},
		&models.Application{},
		&models.Chat{},
	)
}
