package controller

import (
	stderrors "errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/internal/middleware"
)

// respondIfInvalid answers 400 with per-field messages when err carries a
// validation result and reports whether it did
func respondIfInvalid(c *gin.Context, err error) bool {
	var result model.ValidationResult
	if !stderrors.As(err, &result) {
		return false
	}

	fields := make([]errors.FieldError, 0, len(result.Errors))
	for _, fe := range result.Errors {
		fields = append(fields, errors.FieldError{Field: fe.Field, Message: fe.Message})
	}
	message := "Validation failed"
	if len(result.Errors) > 0 {
		message = result.Errors[0].Message
	}
	errors.RespondWithValidationError(c, message, fields)
	return true
}

// parseIDParam reads a positive numeric path parameter, answering 400 otherwise
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// requireUserID returns the authenticated caller, answering 401 when absent
func requireUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}
