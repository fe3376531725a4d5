package repository

import (
	"strings"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindCategories() ([]string, error)
	FindByCategory(name string) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}
	logger.Debug("Bulk creating products in database", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

// FindAll returns products in insertion order
func (r *productRepository) FindAll() ([]model.Product, error) {
	logger.Debug("Finding all products in database")

	var products []model.Product
	if err := r.db.Order("id ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products in database", err)
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		logger.Debug("Product not loaded by ID", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}
	return &product, nil
}

// FindCategories returns distinct categories in the order they first appear
func (r *productRepository) FindCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Product{}).
		Select("category").
		Group("category").
		Order("MIN(id) ASC").
		Pluck("category", &categories).Error
	if err != nil {
		logger.Error("Failed to find product categories in database", err)
		return nil, err
	}

	logger.Debug("Product categories found in database", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}

// FindByCategory matches name as a case-insensitive substring of the category
func (r *productRepository) FindByCategory(name string) ([]model.Product, error) {
	logger.Debug("Finding products by category in database", map[string]interface{}{
		"category": name,
	})

	pattern := "%" + escapeLike(strings.ToLower(name)) + "%"
	var products []model.Product
	err := r.db.Where("LOWER(category) LIKE ? ESCAPE '\\'", pattern).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by category in database", err, map[string]interface{}{
			"category": name,
		})
		return nil, err
	}

	logger.Debug("Products found by category in database", map[string]interface{}{
		"category": name,
		"count":    len(products),
	})
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

// Delete soft deletes; carts referencing the product stop showing it
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	result := r.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete product from database", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
