package repository

import (
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/pkg/logger"
	"gorm.io/gorm"
)

type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	Create(post *model.Post) error
	FindByID(id uint) (*model.Post, error)
	FindAll(authorID *uint) ([]model.Post, error)
	Exists(id uint) (bool, error)
	FindLike(postID, userID uint) (*model.PostLike, error)
	CreateLike(like *model.PostLike) error
	DeleteLike(like *model.PostLike) error
	CountLikes(postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

func (r *postRepository) Create(post *model.Post) error {
	logger.Debug("Creating post in database", map[string]interface{}{
		"user_id": post.UserID,
	})

	if err := r.db.Omit("User").Create(post).Error; err != nil {
		logger.Error("Failed to create post in database", err, map[string]interface{}{
			"user_id": post.UserID,
		})
		return err
	}
	return nil
}

// withRelations preloads the author, the liker set and the comments with their authors
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_likes.id ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.User")
}

func (r *postRepository) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := withRelations(r.db).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindAll returns posts newest first, optionally restricted to one author
func (r *postRepository) FindAll(authorID *uint) ([]model.Post, error) {
	query := withRelations(r.db).Order("created_at DESC, id DESC")
	if authorID != nil {
		query = query.Where("user_id = ?", *authorID)
	}

	var posts []model.Post
	if err := query.Find(&posts).Error; err != nil {
		logger.Error("Failed to find posts in database", err)
		return nil, err
	}

	logger.Debug("Posts found in database", map[string]interface{}{
		"count": len(posts),
	})
	return posts, nil
}

func (r *postRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) FindLike(postID, userID uint) (*model.PostLike, error) {
	var like model.PostLike
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *postRepository) CreateLike(like *model.PostLike) error {
	return r.db.Create(like).Error
}

func (r *postRepository) DeleteLike(like *model.PostLike) error {
	return r.db.Delete(like).Error
}

func (r *postRepository) CountLikes(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
