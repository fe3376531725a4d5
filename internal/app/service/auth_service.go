package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	apperrors "github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/pkg/logger"
	"github.com/ikkim/storefeed/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenRevoker stores revoked tokens until they would have expired anyway
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

type AuthService interface {
	Register(username, email, password string) (*model.User, string, error)
	Login(email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	expiry    time.Duration
	revoker   TokenRevoker
}

// NewAuthService builds the auth service. revoker may be nil, in which case
// logout is a no-op.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	expiry time.Duration,
	revoker TokenRevoker,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		expiry:    expiry,
		revoker:   revoker,
	}
}

func (s *authService) Register(username, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	logger.Info("Attempting user registration", map[string]interface{}{
		"email":    email,
		"username": username,
	})

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, "", ErrEmailAlreadyExists
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Role:     model.RoleUser,
	}
	if result := user.Validate(); !result.OK() {
		return nil, "", result
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", err
	}
	user.PasswordHash = hashedPassword

	if err := s.userRepo.Create(user); err != nil {
		// a concurrent registration won the race for this email
		if apperrors.IsUniqueViolation(err) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, token, nil
}

func (s *authService) Login(email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, "", ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})

	return user, token, nil
}

// Logout revokes token for the rest of its lifetime
func (s *authService) Logout(ctx context.Context, token string) error {
	if s.revoker == nil {
		return nil
	}

	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		// already unusable, nothing to revoke
		return nil
	}

	if err := s.revoker.Revoke(ctx, token, util.TokenTTL(claims)); err != nil {
		logger.Error("Failed to revoke token", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

func (s *authService) issueToken(user *model.User) (string, error) {
	token, err := util.GenerateToken(util.TokenSubject{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}, s.jwtSecret, s.expiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
