package router

import (
	"io/fs"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/config"
	"github.com/ikkim/storefeed/internal/app/controller"
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/middleware"
)

// ShopRouter wires the storefront API. UploadController may be nil when no
// bucket is configured, and Assets may be nil to skip the front end.
type ShopRouter struct {
	AuthController    *controller.AuthController
	ProductController *controller.ProductController
	CartController    *controller.CartController
	OrderController   *controller.OrderController
	UploadController  *controller.UploadController
	AuthMiddleware    *middleware.AuthMiddleware
	Assets            fs.FS
	Config            *config.Config
}

func (r *ShopRouter) Setup() *gin.Engine {
	router := newEngine(r.Config, "Shop")
	serveFrontend(router, r.Assets)

	authenticate := r.AuthMiddleware.Authenticate()
	adminOnly := r.AuthMiddleware.RequireRole(string(model.RoleAdmin))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.AuthController.Register)
			auth.POST("/login", r.AuthController.Login)
			auth.POST("/logout", authenticate, r.AuthController.Logout)
			auth.GET("/me", authenticate, r.AuthController.Me)
		}

		products := api.Group("/products")
		{
			products.GET("", r.ProductController.ListProducts)
			products.GET("/categories", r.ProductController.ListCategories)
			products.GET("/category/:name", r.ProductController.ListByCategory)
			products.GET("/:id", r.ProductController.GetProduct)

			products.POST("", authenticate, adminOnly, r.ProductController.CreateProduct)
			products.PUT("/:id", authenticate, adminOnly, r.ProductController.UpdateProduct)
			products.DELETE("/:id", authenticate, adminOnly, r.ProductController.DeleteProduct)
		}

		cart := api.Group("/cart")
		cart.Use(authenticate)
		{
			cart.GET("", r.CartController.GetCart)
			cart.POST("", r.CartController.AddToCart)
			cart.PUT("/:productId", r.CartController.UpdateQuantity)
			cart.DELETE("/:productId", r.CartController.RemoveItem)
		}

		orders := api.Group("/orders")
		orders.Use(authenticate)
		{
			orders.POST("", r.OrderController.Checkout)
			orders.GET("/history", r.OrderController.History)
		}

		if r.UploadController != nil {
			api.POST("/uploads/presign", authenticate, adminOnly, r.UploadController.GeneratePresignedURL)
		}
	}

	return router
}
