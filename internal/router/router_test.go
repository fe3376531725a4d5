package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/config"
	"github.com/ikkim/storefeed/internal/app/controller"
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/repository"
	"github.com/ikkim/storefeed/internal/app/service"
	"github.com/ikkim/storefeed/internal/db"
	"github.com/ikkim/storefeed/internal/middleware"
	"github.com/ikkim/storefeed/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "router-secret"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://shop.test"}},
	}
}

func setupShopRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)

	authService := service.NewAuthService(userRepo, testSecret, time.Hour, nil)
	userService := service.NewUserService(userRepo)

	r := &ShopRouter{
		AuthController:    controller.NewAuthController(authService, userService),
		ProductController: controller.NewProductController(service.NewProductService(productRepo)),
		CartController:    controller.NewCartController(service.NewCartService(cartRepo, productRepo, testDB)),
		OrderController:   controller.NewOrderController(service.NewOrderService(repository.NewOrderRepository(testDB), cartRepo, testDB, nil)),
		AuthMiddleware:    middleware.NewAuthMiddleware(testSecret, userService, nil),
		Assets:            fstest.MapFS{"index.html": {Data: []byte("<html>shop</html>")}},
		Config:            testConfig(),
	}
	return r.Setup(), testDB
}

func tokenFor(t *testing.T, testDB *gorm.DB, username string, role model.UserRole) string {
	user := &model.User{Username: username, Email: username + "@example.com", PasswordHash: "x", Role: role}
	require.NoError(t, testDB.Create(user).Error)
	token, err := util.GenerateToken(util.TokenSubject{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(role),
	}, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func do(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestShopRouter_PublicRoutes(t *testing.T) {
	router, _ := setupShopRouter(t)

	w := do(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","message":"Shop API is running"}`, w.Body.String())

	w = do(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shop")

	w = do(router, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/api/products/categories", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShopRouter_AccessControl(t *testing.T) {
	router, testDB := setupShopRouter(t)
	userToken := tokenFor(t, testDB, "shopper", model.RoleUser)
	adminToken := tokenFor(t, testDB, "owner", model.RoleAdmin)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"cart needs a token", http.MethodGet, "/api/cart", "", http.StatusUnauthorized},
		{"cart with token", http.MethodGet, "/api/cart", userToken, http.StatusOK},
		{"history with token", http.MethodGet, "/api/orders/history", userToken, http.StatusOK},
		{"checkout needs a token", http.MethodPost, "/api/orders", "", http.StatusUnauthorized},
		{"delete product as user", http.MethodDelete, "/api/products/1", userToken, http.StatusForbidden},
		{"delete missing product as admin", http.MethodDelete, "/api/products/1", adminToken, http.StatusNotFound},
		{"presign not registered without bucket", http.MethodPost, "/api/uploads/presign", adminToken, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.path, tt.token)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	router, _ := setupShopRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://shop.test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://shop.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSocialRouter_Routes(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	postRepo := repository.NewPostRepository(testDB)
	userService := service.NewUserService(userRepo)

	r := &SocialRouter{
		AuthController:    controller.NewAuthController(service.NewAuthService(userRepo, testSecret, time.Hour, nil), userService),
		UserController:    controller.NewUserController(userService),
		PostController:    controller.NewPostController(service.NewPostService(postRepo, testDB, nil)),
		CommentController: controller.NewCommentController(service.NewCommentService(repository.NewCommentRepository(testDB), postRepo, nil)),
		AuthMiddleware:    middleware.NewAuthMiddleware(testSecret, userService, nil),
		Config:            testConfig(),
	}
	router := r.Setup()
	token := tokenFor(t, testDB, "poster", model.RoleUser)

	w := do(router, http.MethodGet, "/health", "")
	assert.Contains(t, w.Body.String(), "Social API is running")

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/posts", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/users/me", token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/users/me", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/users/999", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPost, "/posts/1/like", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodPost, "/posts/1/like", token).Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/ws/feed", token).Code)
}
