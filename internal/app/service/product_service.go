package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	"github.com/ikkim/storefeed/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrNoProductsInCategory = errors.New("no products found for this category")
)

// ProductUpdate carries the fields an admin wants to change; nil means keep
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
}

type ProductService interface {
	ListProducts() ([]model.Product, error)
	ListCategories() ([]string, error)
	ListByCategory(name string) ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(id uint, changes ProductUpdate) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) ListCategories() ([]string, error) {
	categories, err := s.productRepo.FindCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListByCategory matches case-insensitively on a substring of the category.
// An empty result is reported as ErrNoProductsInCategory.
func (s *productService) ListByCategory(name string) ([]model.Product, error) {
	name = strings.TrimSpace(name)

	products, err := s.productRepo.FindByCategory(name)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	if len(products) == 0 {
		logger.Debug("No products matched category", map[string]interface{}{
			"category": name,
		})
		return nil, ErrNoProductsInCategory
	}
	return products, nil
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	product.ID = 0
	product.Normalize()
	if result := product.Validate(); !result.OK() {
		return result
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"category":   product.Category,
	})
	return nil
}

func (s *productService) UpdateProduct(id uint, changes ProductUpdate) (*model.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		product.Name = *changes.Name
	}
	if changes.Description != nil {
		product.Description = *changes.Description
	}
	if changes.Price != nil {
		product.Price = *changes.Price
	}
	if changes.Image != nil {
		product.Image = *changes.Image
	}
	if changes.Stock != nil {
		product.Stock = *changes.Stock
	}
	if changes.Category != nil {
		product.Category = *changes.Category
	}

	product.Normalize()
	if result := product.Validate(); !result.OK() {
		return nil, result
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	return product, nil
}

// DeleteProduct soft deletes the product; cart lines pointing at it are
// purged by the cart cleanup job and past orders keep showing it
func (s *productService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
