package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	"github.com/ikkim/storefeed/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
)

type OrderService interface {
	Checkout(ctx context.Context, userID uint) (*model.Order, error)
	History(userID uint) ([]model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	db        *gorm.DB
	events    OrderEventPublisher
}

// NewOrderService builds the order service. events may be nil.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	db *gorm.DB,
	events OrderEventPublisher,
) OrderService {
	if events == nil {
		events = NoopOrderEventPublisher{}
	}
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		db:        db,
		events:    events,
	}
}

// Checkout turns the user's cart into an order priced at current product
// prices and empties the cart, all in one transaction
func (s *orderService) Checkout(ctx context.Context, userID uint) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id": userID,
	})

	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		locked, err := carts.LockByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		cart, err := carts.FindByUserID(userID)
		if err != nil {
			return err
		}
		cart.DropMissingProducts()
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			lineTotal := model.LineTotal(line.Product.Price, line.Quantity)
			total = total.Add(lineTotal)
			items = append(items, model.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     model.ToAmount(lineTotal),
			})
		}

		order := &model.Order{
			UserID:     userID,
			Items:      items,
			TotalPrice: model.ToAmount(total),
			Status:     model.OrderStatusPending,
		}
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}

		if err := carts.ClearItems(locked.ID); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrEmptyCart
		}
		logger.Error("Checkout failed", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created order: %w", err)
	}

	logger.Info("Order created", map[string]interface{}{
		"user_id":     userID,
		"order_id":    order.ID,
		"total_price": order.TotalPrice,
		"items":       len(order.Items),
	})

	if err := s.events.PublishOrderPlaced(ctx, order); err != nil {
		logger.Error("Failed to publish order placed event", err, map[string]interface{}{
			"order_id": order.ID,
		})
	}

	return order, nil
}

// History returns the user's orders newest first
func (s *orderService) History(userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order history: %w", err)
	}
	return orders, nil
}
