package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	apperrors "github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// DefaultQuantity is used when an add-to-cart request names no quantity
const DefaultQuantity = 1

type CartService interface {
	GetCart(userID uint) (*model.Cart, error)
	AddToCart(userID, productID uint, quantity int) (*model.Cart, bool, error)
	UpdateQuantity(userID, productID uint, quantity int) (*model.Cart, error)
	RemoveItem(userID, productID uint) error
	PurgeOrphanedItems() (int64, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		db:          db,
	}
}

// GetCart returns the user's cart with live lines only, or ErrCartNotFound
func (s *cartService) GetCart(userID uint) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	cart.DropMissingProducts()
	return cart, nil
}

// AddToCart adds quantity of productID to the user's cart, creating the cart
// on first use. The bool result reports whether the cart was just created.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*model.Cart, bool, error) {
	if quantity < 1 {
		return nil, false, ErrInvalidQuantity
	}

	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, false, ErrProductNotFound
		}
		return nil, false, fmt.Errorf("failed to fetch product: %w", err)
	}

	var created bool
	var err error
	// a unique violation means another request created the cart first;
	// the second attempt finds it
	for attempt := 0; attempt < 2; attempt++ {
		created, err = s.addInTx(userID, productID, quantity)
		if err == nil || !apperrors.IsUniqueViolation(err) {
			break
		}
		logger.Warn("Lost cart creation race, retrying", map[string]interface{}{
			"user_id": userID,
		})
	}
	if err != nil {
		logger.Error("Failed to add item to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, false, fmt.Errorf("failed to add item to cart: %w", err)
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, false, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"cart_id":    cart.ID,
		"new_cart":   created,
		"cart_lines": len(cart.Items),
	})
	return cart, created, nil
}

func (s *cartService) addInTx(userID, productID uint, quantity int) (bool, error) {
	var created bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		cart, err := carts.LockByUserID(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = &model.Cart{UserID: userID}
			if err := carts.Create(cart); err != nil {
				return err
			}
			created = true
		} else if err != nil {
			return err
		}

		item, err := carts.FindItem(cart.ID, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return carts.CreateItem(&model.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
			})
		}
		if err != nil {
			return err
		}

		item.Quantity += quantity
		return carts.UpdateItem(item)
	})
	return created, err
}

func (s *cartService) UpdateQuantity(userID, productID uint, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		cart, err := carts.LockByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		item, err := carts.FindItem(cart.ID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		item.Quantity = quantity
		return carts.UpdateItem(item)
	})
	if err != nil {
		if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrCartItemNotFound) {
			logger.Warn("Cannot update cart item", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
				"reason":     err.Error(),
			})
			return nil, err
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	logger.Info("Cart item quantity updated", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return s.GetCart(userID)
}

// RemoveItem deletes the line for productID; a product not in the cart is a no-op
func (s *cartService) RemoveItem(userID, productID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		cart, err := carts.LockByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		_, err = carts.DeleteItem(cart.ID, productID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil
}

// PurgeOrphanedItems deletes lines whose product was deleted
func (s *cartService) PurgeOrphanedItems() (int64, error) {
	purged, err := s.cartRepo.DeleteOrphanedItems()
	if err != nil {
		return 0, fmt.Errorf("failed to purge orphaned cart items: %w", err)
	}
	return purged, nil
}
