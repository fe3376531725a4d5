package model

import (
	"strings"
	"time"
)

type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id" validate:"required"`
	Title     string    `gorm:"type:varchar(200)" json:"title" validate:"max=200"`
	Content   string    `gorm:"type:text;not null" json:"content" validate:"required,max=5000"`
	Image     string    `gorm:"type:text" json:"image"`
	CreatedAt time.Time `gorm:"index" json:"date"`
	UpdatedAt time.Time `json:"updated_at"`

	User     User       `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Likes    []PostLike `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Comments []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Post) TableName() string {
	return "posts"
}

// Normalize trims user supplied text
func (p *Post) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
	p.Image = strings.TrimSpace(p.Image)
}

func (p *Post) Validate() ValidationResult {
	return validateStruct(p)
}

// PostLike is one member of a post's liker set
type PostLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

// PostView is the wire shape of a post with its author, likers and comments
type PostView struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Image         string        `json:"image"`
	User          UserSummary   `json:"user"`
	Likes         []uint        `json:"likes"`
	LikesCount    int           `json:"likesCount"`
	Comments      []CommentView `json:"comments"`
	CommentsCount int           `json:"commentsCount"`
	Date          time.Time     `json:"date"`
}

// View expects User, Likes and Comments (with their User) to be preloaded
func (p *Post) View() PostView {
	likes := make([]uint, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, l.UserID)
	}
	comments := make([]CommentView, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, p.Comments[i].View())
	}
	return PostView{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Image:         p.Image,
		User:          p.User.Summary(),
		Likes:         likes,
		LikesCount:    len(likes),
		Comments:      comments,
		CommentsCount: len(comments),
		Date:          p.CreatedAt,
	}
}
