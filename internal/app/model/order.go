package model

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a frozen snapshot of a cart taken at checkout
type Order struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items" validate:"-"`
	TotalPrice float64     `gorm:"not null" json:"total_price" validate:"gte=0"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status" validate:"oneof=pending completed shipped cancelled"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) Validate() ValidationResult {
	return validateStruct(o)
}

// OrderItem.Price is the line total (unit price × quantity) at checkout time
type OrderItem struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity" validate:"gte=1"`
	Price     float64 `gorm:"not null" json:"price" validate:"gte=0"`

	Product Product `gorm:"foreignKey:ProductID" json:"product" validate:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
