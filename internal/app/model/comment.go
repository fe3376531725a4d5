package model

import (
	"strings"
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id" validate:"required"`
	PostID    uint      `gorm:"not null;index" json:"post" validate:"required"`
	Text      string    `gorm:"type:text;not null" json:"text" validate:"required,max=2000"`
	CreatedAt time.Time `gorm:"index" json:"date"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-" validate:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) Normalize() {
	c.Text = strings.TrimSpace(c.Text)
}

func (c *Comment) Validate() ValidationResult {
	return validateStruct(c)
}

type CommentView struct {
	ID   uint        `json:"id"`
	Text string      `json:"text"`
	Post uint        `json:"post"`
	User UserSummary `json:"user"`
	Date time.Time   `json:"date"`
}

func (c *Comment) View() CommentView {
	return CommentView{
		ID:   c.ID,
		Text: c.Text,
		Post: c.PostID,
		User: c.User.Summary(),
		Date: c.CreatedAt,
	}
}
