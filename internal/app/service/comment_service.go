package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	"github.com/ikkim/storefeed/pkg/logger"
)

var ErrCommentInvalid = errors.New("text and post id are required")

type CommentService interface {
	Create(userID, postID uint, text string) (*model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	feed        FeedBroadcaster
}

// NewCommentService builds the comment service. feed may be nil.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	feed FeedBroadcaster,
) CommentService {
	if feed == nil {
		feed = noopFeedBroadcaster{}
	}
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		feed:        feed,
	}
}

func (s *commentService) Create(userID, postID uint, text string) (*model.Comment, error) {
	comment := &model.Comment{UserID: userID, PostID: postID, Text: text}
	comment.Normalize()
	if comment.Text == "" || comment.PostID == 0 {
		return nil, ErrCommentInvalid
	}
	if result := comment.Validate(); !result.OK() {
		return nil, result
	}

	exists, err := s.postRepo.Exists(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	created, err := s.commentRepo.FindByID(comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}

	logger.Info("Comment created", map[string]interface{}{
		"comment_id": created.ID,
		"post_id":    postID,
		"user_id":    userID,
	})
	s.feed.Broadcast(FeedCommentCreated, created.View())

	return created, nil
}
