package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/service"
	"github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/internal/middleware"
)

type PostController struct {
	postService service.PostService
}

func NewPostController(postService service.PostService) *PostController {
	return &PostController{postService: postService}
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

// CreatePost
// POST /posts
func (ctrl *PostController) CreatePost(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	_ = c.ShouldBindJSON(&req)

	post, err := ctrl.postService.Create(userID, req.Title, req.Content, req.Image)
	if err != nil {
		if stderrors.Is(err, service.ErrContentRequired) {
			errors.BadRequest(c, errors.ValidationRequired, "Content is required and cannot be empty")
			return
		}
		if respondIfInvalid(c, err) {
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to create post", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Post created successfully",
		"post":    post.View(),
	})
}

// ListPosts returns posts newest first, optionally for one author
// GET /posts?userId=
func (ctrl *PostController) ListPosts(c *gin.Context) {
	var authorID *uint
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidID, "Invalid userId")
			return
		}
		uid := uint(id)
		authorID = &uid
	}

	posts, err := ctrl.postService.List(authorID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list posts", err)
		errors.InternalError(c, "")
		return
	}

	views := make([]model.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, posts[i].View())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Posts retrieved successfully",
		"count":   len(views),
		"posts":   views,
	})
}

// GetPost
// GET /posts/:id
func (ctrl *PostController) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := ctrl.postService.Get(id)
	if err != nil {
		ctrl.respondError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    post.View(),
	})
}

// ToggleLike likes the post, or unlikes it when the caller already did
// POST /posts/:id/like
func (ctrl *PostController) ToggleLike(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	liked, count, err := ctrl.postService.ToggleLike(id, userID)
	if err != nil {
		ctrl.respondError(c, err, id)
		return
	}

	message := "Post unliked successfully"
	if liked {
		message = "Post liked successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"liked":      liked,
		"likesCount": count,
	})
}

func (ctrl *PostController) respondError(c *gin.Context, err error, postID uint) {
	if stderrors.Is(err, service.ErrPostNotFound) {
		errors.NotFound(c, errors.PostNotFound, "Post not found")
		return
	}
	middleware.GetLoggerFromContext(c).Error("Post operation failed", err, map[string]interface{}{
		"post_id": postID,
	})
	errors.InternalError(c, "")
}
