package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	"github.com/ikkim/storefeed/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrContentRequired = errors.New("content is required")
)

type PostService interface {
	Create(userID uint, title, content, image string) (*model.Post, error)
	List(authorID *uint) ([]model.Post, error)
	Get(id uint) (*model.Post, error)
	ToggleLike(postID, userID uint) (bool, int64, error)
}

type postService struct {
	postRepo repository.PostRepository
	db       *gorm.DB
	feed     FeedBroadcaster
}

// NewPostService builds the post service. feed may be nil.
func NewPostService(postRepo repository.PostRepository, db *gorm.DB, feed FeedBroadcaster) PostService {
	if feed == nil {
		feed = noopFeedBroadcaster{}
	}
	return &postService{
		postRepo: postRepo,
		db:       db,
		feed:     feed,
	}
}

func (s *postService) Create(userID uint, title, content, image string) (*model.Post, error) {
	post := &model.Post{
		UserID:  userID,
		Title:   title,
		Content: content,
		Image:   image,
	}
	post.Normalize()
	if post.Content == "" {
		return nil, ErrContentRequired
	}
	if result := post.Validate(); !result.OK() {
		return nil, result
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	created, err := s.Get(post.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Post created", map[string]interface{}{
		"post_id": created.ID,
		"user_id": userID,
	})
	s.feed.Broadcast(FeedPostCreated, created.View())

	return created, nil
}

func (s *postService) List(authorID *uint) ([]model.Post, error) {
	posts, err := s.postRepo.FindAll(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) Get(id uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return post, nil
}

// ToggleLike flips the caller's membership in the post's liker set and
// returns the new state with the resulting like count
func (s *postService) ToggleLike(postID, userID uint) (bool, int64, error) {
	var liked bool
	var count int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.postRepo.WithTx(tx)

		exists, err := posts.Exists(postID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrPostNotFound
		}

		like, err := posts.FindLike(postID, userID)
		switch {
		case err == nil:
			if err := posts.DeleteLike(like); err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := posts.CreateLike(&model.PostLike{PostID: postID, UserID: userID}); err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		count, err = posts.CountLikes(postID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return false, 0, err
		}
		logger.Error("Failed to toggle like", err, map[string]interface{}{
			"post_id": postID,
			"user_id": userID,
		})
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}

	eventType := FeedPostUnliked
	if liked {
		eventType = FeedPostLiked
	}
	logger.Info("Post like toggled", map[string]interface{}{
		"post_id":     postID,
		"user_id":     userID,
		"liked":       liked,
		"likes_count": count,
	})
	s.feed.Broadcast(eventType, LikeEvent{PostID: postID, UserID: userID, LikesCount: count})

	return liked, count, nil
}
