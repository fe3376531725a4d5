package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is created lazily on the first add and emptied, not deleted, at checkout
type Cart struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items" validate:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

// DropMissingProducts removes lines whose product no longer loads (soft deleted)
func (c *Cart) DropMissingProducts() {
	live := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Product.ID != 0 {
			live = append(live, item)
		}
	}
	c.Items = live
}

// Total sums current product price × quantity over the loaded lines
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(LineTotal(item.Product.Price, item.Quantity))
	}
	return total
}

type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product;index" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity" validate:"gte=1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product" validate:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (i *CartItem) Validate() ValidationResult {
	return validateStruct(i)
}
