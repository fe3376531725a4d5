package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/internal/app/service"
	"github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/internal/middleware"
)

type CommentController struct {
	commentService service.CommentService
}

func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

type CreateCommentRequest struct {
	Text string `json:"text"`
	Post uint   `json:"post"`
}

// CreateComment
// POST /comments
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	_ = c.ShouldBindJSON(&req)

	comment, err := ctrl.commentService.Create(userID, req.Post, req.Text)
	if err != nil {
		if respondIfInvalid(c, err) {
			return
		}
		switch {
		case stderrors.Is(err, service.ErrCommentInvalid):
			errors.BadRequest(c, errors.ValidationRequired, "Text and post ID are required.")
		case stderrors.Is(err, service.ErrPostNotFound):
			errors.NotFound(c, errors.PostNotFound, "Post not found")
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to create comment", err, map[string]interface{}{
				"user_id": userID,
				"post_id": req.Post,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment created successfully",
		"comment": comment.View(),
	})
}
