package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const DefaultCategory = "General"

type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	Description string         `gorm:"type:text;not null" json:"description" validate:"required"`
	Price       float64        `gorm:"not null" json:"price" validate:"gte=0"`
	Image       string         `gorm:"type:text;not null;default:''" json:"image"`
	Stock       int            `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Category    string         `gorm:"type:varchar(100);not null;default:'General';index" json:"category" validate:"max=100"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// Normalize trims text fields and applies the default category
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Image = strings.TrimSpace(p.Image)
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = DefaultCategory
	}
}

func (p *Product) Validate() ValidationResult {
	return validateStruct(p)
}
