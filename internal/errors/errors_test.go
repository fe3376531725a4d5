package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "Not found", err: gorm.ErrRecordNotFound, wantStatus: 404, wantCode: ResourceNotFound},
		{name: "Wrapped not found", err: fmt.Errorf("find: %w", gorm.ErrRecordNotFound), wantStatus: 404, wantCode: ResourceNotFound},
		{name: "Translated duplicate", err: gorm.ErrDuplicatedKey, wantStatus: 409, wantCode: ResourceAlreadyExists},
		{name: "Postgres duplicate", err: &pgconn.PgError{Code: "23505"}, wantStatus: 409, wantCode: ResourceAlreadyExists},
		{name: "Postgres foreign key", err: &pgconn.PgError{Code: "23503"}, wantStatus: 409, wantCode: ResourceConflict},
		{name: "Postgres not null", err: &pgconn.PgError{Code: "23502"}, wantStatus: 400, wantCode: ValidationRequired},
		{name: "Unknown", err: fmt.Errorf("connection reset"), wantStatus: 500, wantCode: InternalDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, "product")
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantCode, info.Code)
		})
	}

	assert.Equal(t, "Product not found", ParseError(gorm.ErrRecordNotFound, "product").Message)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsUniqueViolation(fmt.Errorf("UNIQUE constraint failed: users.email")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NotFound(c, PostNotFound, "Post not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, PostNotFound, body.Error)
	assert.Equal(t, "Post not found", body.Message)
}

func TestRespondWithValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithValidationError(c, "", []FieldError{{Field: "price", Message: "price must be at least 0"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ValidationInvalidInput, body.Error)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "price", body.Fields[0].Field)
}
