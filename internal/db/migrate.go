package db

import (
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in migration order
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
	}
}

// Migrate runs database migrations on the global connection
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs database migrations on conn
func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the default catalog when the products table is empty
func Seed() error {
	_, err := SeedDefaultProducts(DB)
	return err
}
