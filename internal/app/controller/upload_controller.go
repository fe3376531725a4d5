package controller

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/internal/middleware"
	"github.com/ikkim/storefeed/internal/storage"
)

// UploadPresigner issues upload URLs; satisfied by *storage.S3Storage
type UploadPresigner interface {
	PresignUpload(ctx context.Context, filename, contentType, folder string) (*storage.PresignedURLResponse, error)
}

type UploadController struct {
	storage       UploadPresigner
	defaultFolder string
}

func NewUploadController(storage UploadPresigner, defaultFolder string) *UploadController {
	return &UploadController{
		storage:       storage,
		defaultFolder: defaultFolder,
	}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"`
}

// GeneratePresignedURL returns a 15 minute PUT URL for an image upload
// POST /api/uploads/presign, POST /uploads/presign
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presigned URL request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationRequired, "filename and content_type are required")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = ctrl.defaultFolder
	}

	response, err := ctrl.storage.PresignUpload(c.Request.Context(), req.Filename, req.ContentType, folder)
	if err != nil {
		if stderrors.Is(err, storage.ErrUnsupportedContentType) {
			errors.BadRequest(c, errors.UploadInvalidType, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
			return
		}
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"folder":       folder,
		})
		errors.InternalError(c, "")
		return
	}

	log.Info("Presigned URL generated successfully", map[string]interface{}{
		"content_type": req.ContentType,
		"key":          response.Key,
	})

	c.JSON(http.StatusOK, response)
}
