package repository

import (
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/pkg/logger"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id uint) (*model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	logger.Debug("Creating comment in database", map[string]interface{}{
		"post_id": comment.PostID,
		"user_id": comment.UserID,
	})

	if err := r.db.Omit("User").Create(comment).Error; err != nil {
		logger.Error("Failed to create comment in database", err, map[string]interface{}{
			"post_id": comment.PostID,
		})
		return err
	}
	return nil
}

// FindByID loads the comment with its author
func (r *commentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
