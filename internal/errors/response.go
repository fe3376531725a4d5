package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`   // code from codes.go
	Message string `json:"message"` // human readable
}

// RespondWithError writes statusCode with an error body
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   errorCode,
		Message: message,
	})
}

// AbortWithError writes the error body and stops the handler chain
func AbortWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	RespondWithError(c, statusCode, errorCode, message)
	c.Abort()
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Token is not valid."
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have permission to perform this action."
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Server Error"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// FieldError mirrors model.FieldError so this package stays free of model imports
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a 400 body carrying per-field messages
type ValidationError struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, message string, fields []FieldError) {
	if message == "" {
		message = "Validation failed"
	}
	c.JSON(http.StatusBadRequest, ValidationError{
		Success: false,
		Error:   ValidationInvalidInput,
		Message: message,
		Fields:  fields,
	})
}
