package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ErrorInfo is an HTTP-ready classification of an error
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// IsUniqueViolation reports whether err is a duplicate key error from any supported driver
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

// ParseError classifies a raw persistence error. Details stay server side;
// the message only names what the caller can act on.
func ParseError(err error, resource string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: "Server Error"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Status: http.StatusNotFound, Code: ResourceNotFound, Message: notFoundMessage(resource)}
	}

	if IsUniqueViolation(err) {
		return ErrorInfo{Status: http.StatusConflict, Code: ResourceAlreadyExists, Message: "Resource already exists"}
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrorInfo{Status: http.StatusConflict, Code: ResourceConflict, Message: "Referenced resource does not exist or is still in use"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return ErrorInfo{Status: http.StatusConflict, Code: ResourceConflict, Message: "Referenced resource does not exist or is still in use"}
		case pgNotNullViolation:
			return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationRequired, Message: "A required field is missing"}
		case pgCheckViolation:
			return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: "A field is out of range"}
		}
	}

	return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalDatabase, Message: "Server Error"}
}

func notFoundMessage(resource string) string {
	if resource == "" {
		return "Resource not found"
	}
	return strings.ToUpper(resource[:1]) + resource[1:] + " not found"
}
