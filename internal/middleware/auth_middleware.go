package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/pkg/util"
)

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UsernameKey  = "username"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	TokenKey     = "token"
)

const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Token is not valid."
)

// UserLookup resolves the account a token was issued for
type UserLookup interface {
	GetProfile(userID uint) (*model.User, error)
}

// TokenBlacklist reports tokens revoked by logout
type TokenBlacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	jwtSecret string
	users     UserLookup
	blacklist TokenBlacklist
}

// NewAuthMiddleware builds the auth gate. blacklist may be nil when no
// revocation store is configured.
func NewAuthMiddleware(jwtSecret string, users UserLookup, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		users:     users,
		blacklist: blacklist,
	}
}

// Authenticate validates the bearer token (required). The token query
// parameter is honoured only on websocket upgrade requests.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		var token string
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				log.Warn("Invalid authorization header format", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				m.reject(c, msgInvalidToken)
				return
			}
			token = parts[1]
		} else if websocket.IsWebSocketUpgrade(c.Request) {
			token = c.Query("token")
		}

		if token == "" {
			log.Warn("Missing authorization token", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			m.reject(c, msgNoToken)
			return
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			m.reject(c, msgInvalidToken)
			return
		}

		if m.blacklist != nil {
			revoked, err := m.blacklist.IsRevoked(c.Request.Context(), token)
			if err != nil {
				log.Error("Failed to check token revocation", err, map[string]interface{}{
					"user_id": claims.UserID,
				})
				m.reject(c, msgInvalidToken)
				return
			}
			if revoked {
				log.Warn("Revoked token presented", map[string]interface{}{
					"user_id": claims.UserID,
				})
				m.reject(c, msgInvalidToken)
				return
			}
		}

		user, err := m.users.GetProfile(claims.UserID)
		if err != nil {
			log.Warn("Token user could not be resolved", map[string]interface{}{
				"user_id": claims.UserID,
				"error":   err.Error(),
			})
			m.reject(c, msgInvalidToken)
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UsernameKey, user.Username)
		c.Set(UserEmailKey, user.Email)
		c.Set(UserRoleKey, user.Role)
		c.Set(TokenKey, token)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": user.ID,
			"role":    user.Role,
		})

		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, message string) {
	errors.Unauthorized(c, message)
	c.Abort()
}

// RequireRole checks if user has required role
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, ok := GetUserRole(c)
		userID, _ := GetUserID(c)
		if ok {
			for _, r := range roles {
				if role == model.UserRole(r) {
					c.Next()
					return
				}
			}
		}

		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.Forbidden(c, "")
		c.Abort()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(UsernameKey)
	if !exists {
		return "", false
	}
	s, ok := username.(string)
	return s, ok
}

func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(model.UserRole)
	return r, ok
}

// GetToken returns the raw bearer token of the authenticated request
func GetToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(TokenKey)
	if !exists {
		return "", false
	}
	s, ok := token.(string)
	return s, ok
}
