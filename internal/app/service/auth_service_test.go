package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	"github.com/ikkim/storefeed/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret"

type fakeRevoker struct {
	tokens map[string]time.Duration
	err    error
}

func (f *fakeRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	if f.tokens == nil {
		f.tokens = map[string]time.Duration{}
	}
	f.tokens[token] = ttl
	return nil
}

func setupAuthServiceTest(t *testing.T, revoker TokenRevoker) (AuthService, *gorm.DB) {
	testDB := setupServiceTestDB(t)
	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, testJWTSecret, time.Hour, revoker), testDB
}

func TestAuthService_Register(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t, nil)

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			username: "alice",
			email:    "Alice@Example.com",
			password: "password123",
		},
		{
			name:     "Duplicate email",
			username: "alice2",
			email:    "alice@example.com",
			password: "password456",
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := authService.Register(tt.username, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, "alice@example.com", user.Email)
			assert.Equal(t, model.RoleUser, user.Role)
			assert.NotEqual(t, tt.password, user.PasswordHash)

			claims, err := util.ValidateToken(token, testJWTSecret)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, "alice", claims.Username)
		})
	}

	var count int64
	require.NoError(t, testDB.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t, nil)

	_, _, err := authService.Register("bob", "not-an-email", "password123")
	require.Error(t, err)

	var result model.ValidationResult
	require.True(t, errors.As(err, &result))
	assert.Equal(t, "email", result.Errors[0].Field)
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t, nil)

	_, _, err := authService.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "Valid login", email: "alice@example.com", password: "password123"},
		{name: "Email is case insensitive", email: "ALICE@example.com", password: "password123"},
		{name: "Wrong password", email: "alice@example.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "Unknown email", email: "nobody@example.com", password: "password123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := authService.Login(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", user.Username)
			assert.NotEmpty(t, token)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	revoker := &fakeRevoker{}
	authService, _ := setupAuthServiceTest(t, revoker)

	_, token, err := authService.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, authService.Logout(context.Background(), token))
	ttl, ok := revoker.tokens[token]
	require.True(t, ok)
	assert.True(t, ttl > 0 && ttl <= time.Hour)

	// invalid tokens are ignored
	require.NoError(t, authService.Logout(context.Background(), "garbage"))
	assert.Len(t, revoker.tokens, 1)
}

func TestAuthService_Logout_RevokerFailure(t *testing.T) {
	authService, _ := setupAuthServiceTest(t, &fakeRevoker{err: errors.New("redis down")})

	_, token, err := authService.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	assert.Error(t, authService.Logout(context.Background(), token))
}

func TestAuthService_Logout_WithoutRevoker(t *testing.T) {
	authService, _ := setupAuthServiceTest(t, nil)
	assert.NoError(t, authService.Logout(context.Background(), "anything"))
}

func TestUserService_GetProfile(t *testing.T) {
	testDB := setupServiceTestDB(t)
	userService := NewUserService(repository.NewUserRepository(testDB))
	user := createUser(t, testDB, "carol")

	found, err := userService.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", found.Username)

	_, err = userService.GetProfile(user.ID + 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
