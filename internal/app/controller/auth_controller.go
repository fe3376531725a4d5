package controller

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/internal/app/service"
	"github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthController(authService service.AuthService, userService service.UserService) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and logs it in
// POST /api/auth/register, POST /users/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		errors.BadRequest(c, errors.ValidationRequired, "Please provide username, email, and password")
		return
	}

	user, token, err := ctrl.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if stderrors.Is(err, service.ErrEmailAlreadyExists) {
			errors.BadRequest(c, errors.AuthEmailAlreadyExists, "User already exists")
			return
		}
		if respondIfInvalid(c, err) {
			return
		}
		log.Error("Failed to register user", err, map[string]interface{}{
			"email": req.Email,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created and logged in successfully",
		"token":   token,
		"user":    user,
	})
}

// Login authenticates with email and password
// POST /api/auth/login, POST /users/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		errors.BadRequest(c, errors.ValidationRequired, "Please provide email and password")
		return
	}

	user, token, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidCredentials) {
			errors.BadRequest(c, errors.AuthInvalidCredentials, "Invalid credentials")
			return
		}
		log.Error("Failed to log in user", err, map[string]interface{}{
			"email": req.Email,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in successfully",
		"token":   token,
		"user":    user,
	})
}

// Logout revokes the caller's token
// POST /api/auth/logout, POST /users/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, _ := middleware.GetToken(c)
	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		log.Error("Failed to log out user", err)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Me returns the caller's profile
// GET /api/auth/me, GET /users/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := ctrl.userService.GetProfile(userID)
	if err != nil {
		if stderrors.Is(err, service.ErrUserNotFound) {
			errors.NotFound(c, errors.UserNotFound, "User not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to fetch profile", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
