package service

import (
	"context"
	"time"

	"github.com/ikkim/storefeed/internal/app/model"
)

// OrderEventPublisher announces placed orders to downstream consumers
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
}

// NoopOrderEventPublisher drops every event
type NoopOrderEventPublisher struct{}

func (NoopOrderEventPublisher) PublishOrderPlaced(context.Context, *model.Order) error {
	return nil
}

// JSONPublisher is satisfied by rabbitmq.Publisher
type JSONPublisher interface {
	PublishJSON(ctx context.Context, queue string, v interface{}) error
}

type OrderPlacedEvent struct {
	OrderID    uint                   `json:"order_id"`
	UserID     uint                   `json:"user_id"`
	TotalPrice float64                `json:"total_price"`
	Items      []OrderPlacedEventItem `json:"items"`
	CreatedAt  time.Time              `json:"created_at"`
}

type OrderPlacedEventItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// NewOrderPlacedEvent flattens an order into its wire event
func NewOrderPlacedEvent(order *model.Order) OrderPlacedEvent {
	items := make([]OrderPlacedEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderPlacedEventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return OrderPlacedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Items:      items,
		CreatedAt:  order.CreatedAt,
	}
}

type queueOrderEventPublisher struct {
	publisher JSONPublisher
	queue     string
}

// NewQueueOrderEventPublisher publishes order events as JSON to queue
func NewQueueOrderEventPublisher(publisher JSONPublisher, queue string) OrderEventPublisher {
	return &queueOrderEventPublisher{publisher: publisher, queue: queue}
}

func (p *queueOrderEventPublisher) PublishOrderPlaced(ctx context.Context, order *model.Order) error {
	return p.publisher.PublishJSON(ctx, p.queue, NewOrderPlacedEvent(order))
}
