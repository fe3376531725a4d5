package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-for-middleware"

type fakeUsers map[uint]*model.User

func (f fakeUsers) GetProfile(userID uint) (*model.User, error) {
	if u, ok := f[userID]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

type fakeBlacklist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	return f.revoked[token], f.err
}

var testUsers = fakeUsers{
	1: {ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleUser},
	2: {ID: 2, Username: "root", Email: "root@example.com", Role: model.RoleAdmin},
}

func setupMiddlewareTest(blacklist TokenBlacklist) (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router, NewAuthMiddleware(testJWTSecret, testUsers, blacklist)
}

func generateTestToken(t *testing.T, userID uint, expiry time.Duration) string {
	token, err := util.GenerateToken(util.TokenSubject{
		UserID:   userID,
		Username: "someone",
		Email:    "someone@example.com",
		Role:     "user",
	}, testJWTSecret, expiry)
	require.NoError(t, err)
	return token
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest(nil)

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		username, _ := GetUsername(c)
		email, _ := GetUserEmail(c)
		role, _ := GetUserRole(c)
		token, _ := GetToken(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":  userID,
			"username": username,
			"email":    email,
			"role":     role,
			"has_tok":  token != "",
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, 1, time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeMessage(t, w)
	assert.EqualValues(t, 1, body["user_id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, true, body["has_tok"])
}

func TestAuthMiddleware_Authenticate_Failures(t *testing.T) {
	revokedToken := generateTestToken(t, 1, time.Hour)

	tests := []struct {
		name        string
		header      string
		query       string
		wantMessage string
	}{
		{name: "No token", wantMessage: msgNoToken},
		{name: "Query token without upgrade", query: "?token=" + revokedToken, wantMessage: msgNoToken},
		{name: "Malformed header", header: "Token abc", wantMessage: msgInvalidToken},
		{name: "Garbage token", header: "Bearer abc", wantMessage: msgInvalidToken},
		{name: "Expired token", header: "Bearer " + generateTestToken(t, 1, -time.Minute), wantMessage: msgInvalidToken},
		{name: "Deleted user", header: "Bearer " + generateTestToken(t, 99, time.Hour), wantMessage: msgInvalidToken},
		{name: "Revoked token", header: "Bearer " + revokedToken, wantMessage: msgInvalidToken},
	}

	router, authMiddleware := setupMiddlewareTest(&fakeBlacklist{revoked: map[string]bool{revokedToken: true}})
	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decodeMessage(t, w)
			assert.Equal(t, "AUTH_UNAUTHORIZED", body["error"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestAuthMiddleware_Authenticate_BlacklistError(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest(&fakeBlacklist{err: errors.New("redis down")})
	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, 1, time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_Authenticate_WebSocketQueryToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest(nil)
	router.GET("/ws", authMiddleware.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+generateTestToken(t, 2, time.Hour), nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeMessage(t, w)["user_id"])
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest(nil)
	router.GET("/admin", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	tests := []struct {
		name     string
		userID   uint
		wantCode int
	}{
		{name: "Admin allowed", userID: 2, wantCode: http.StatusOK},
		{name: "User forbidden", userID: 1, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+generateTestToken(t, tt.userID, time.Hour))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestAuthMiddleware_RequireRole_WithoutAuthentication(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest(nil)
	router.GET("/admin", authMiddleware.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
