package db

import (
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/pkg/logger"
	"gorm.io/gorm"
)

// DefaultProducts is the starter catalog of the storefront
func DefaultProducts() []model.Product {
	return []model.Product{
		{Name: "Classic Tote Bag", Description: "A durable and stylish tote bag for everyday use.", Price: 120, Category: "Bags", Stock: 25, Image: "https://placehold.co/400x300/F0F4F8/1E293B?text=Tote+Bag"},
		{Name: "Stylish Backpack", Description: "A modern backpack with multiple compartments.", Price: 95, Category: "Bags", Stock: 30, Image: "https://placehold.co/400x300/F0F4F8/1E293B?text=Backpack"},
		{Name: "Elegant Handbag", Description: "An elegant handbag perfect for evening events.", Price: 250, Category: "Bags", Stock: 10, Image: "https://placehold.co/400x300/F0F4F8/1E293B?text=Handbag"},
		{Name: "Minimalist Wallet", Description: "A slim leather wallet with RFID protection.", Price: 40, Category: "Accessories", Stock: 50, Image: "https://placehold.co/400x300/F0F4F8/1E293B?text=Wallet"},
		{Name: "Vintage Sunglasses", Description: "Retro sunglasses with UV400 protection.", Price: 75, Category: "Accessories", Stock: 40, Image: "https://placehold.co/400x300/F0F4F8/1E293B?text=Sunglasses"},
		{Name: "Leather Belt", Description: "A classic full-grain leather belt.", Price: 60, Category: "Accessories", Stock: 35, Image: "https://placehold.co/400x300/F0F4F8/1E293B?text=Belt"},
		{Name: "Sport Watch", Description: "A water-resistant watch built for training.", Price: 150, Category: "Watches", Stock: 20, Image: "https://placehold.co/400x300/F0F4F8/1E293B?text=Sport+Watch"},
		{Name: "Classic Wristwatch", Description: "A timeless wristwatch with a stainless steel case.", Price: 300, Category: "Watches", Stock: 15, Image: "https://placehold.co/400x300/F0F4F8/1E293B?text=Wristwatch"},
	}
}

// SeedDefaultProducts inserts DefaultProducts when no product exists (soft deleted ones count)
// and returns how many rows were inserted
func SeedDefaultProducts(conn *gorm.DB) (int, error) {
	logger.Info("Seeding initial data...")

	var count int64
	if err := conn.Unscoped().Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return 0, nil
	}

	products := DefaultProducts()
	if err := conn.Create(&products).Error; err != nil {
		logger.Error("Failed to seed products", err)
		return 0, err
	}

	logger.Info("Products seeded successfully", map[string]interface{}{
		"total_records": len(products),
	})
	return len(products), nil
}
