package repository

import (
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	// WithTx returns a repository bound to tx
	WithTx(tx *gorm.DB) CartRepository

	Create(cart *model.Cart) error
	FindByUserID(userID uint) (*model.Cart, error)
	LockByUserID(userID uint) (*model.Cart, error)
	FindItem(cartID, productID uint) (*model.CartItem, error)
	CreateItem(item *model.CartItem) error
	UpdateItem(item *model.CartItem) error
	DeleteItem(cartID, productID uint) (int64, error)
	ClearItems(cartID uint) error
	DeleteOrphanedItems() (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	logger.Debug("Creating cart in database", map[string]interface{}{
		"user_id": cart.UserID,
	})

	if err := r.db.Create(cart).Error; err != nil {
		logger.Debug("Cart not created", map[string]interface{}{
			"user_id": cart.UserID,
			"error":   err.Error(),
		})
		return err
	}
	return nil
}

// FindByUserID loads the cart with its lines and their products.
// Lines whose product is soft deleted come back with a zero Product.
func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	logger.Debug("Finding cart by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Product").
		First(&cart).Error
	if err != nil {
		return nil, err
	}

	logger.Debug("Cart found by user ID in database", map[string]interface{}{
		"cart_id": cart.ID,
		"lines":   len(cart.Items),
	})
	return &cart, nil
}

// LockByUserID selects the cart row FOR UPDATE. Call it inside a transaction.
func (r *cartRepository) LockByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindItem(cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Omit("Product").Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})

	err := r.db.Model(item).Update("quantity", item.Quantity).Error
	if err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

// DeleteItem removes the line for productID and reports how many rows went away
func (r *cartRepository) DeleteItem(cartID, productID uint) (int64, error) {
	result := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete cart item from database", result.Error, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return 0, result.Error
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"rows":       result.RowsAffected,
	})
	return result.RowsAffected, nil
}

// ClearItems empties the cart; the cart row itself stays
func (r *cartRepository) ClearItems(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart items in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

// DeleteOrphanedItems purges lines whose product is soft deleted or gone
func (r *cartRepository) DeleteOrphanedItems() (int64, error) {
	live := r.db.Model(&model.Product{}).Select("id")
	result := r.db.Where("product_id NOT IN (?)", live).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete orphaned cart items", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
