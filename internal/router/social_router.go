package router

import (
	"io/fs"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/config"
	"github.com/ikkim/storefeed/internal/app/controller"
	"github.com/ikkim/storefeed/internal/middleware"
)

// SocialRouter wires the posts API and the live feed
type SocialRouter struct {
	AuthController    *controller.AuthController
	UserController    *controller.UserController
	PostController    *controller.PostController
	CommentController *controller.CommentController
	FeedController    *controller.FeedController
	UploadController  *controller.UploadController
	AuthMiddleware    *middleware.AuthMiddleware
	Assets            fs.FS
	Config            *config.Config
}

func (r *SocialRouter) Setup() *gin.Engine {
	router := newEngine(r.Config, "Social")
	serveFrontend(router, r.Assets)

	authenticate := r.AuthMiddleware.Authenticate()

	users := router.Group("/users")
	{
		users.POST("/register", r.AuthController.Register)
		users.POST("/login", r.AuthController.Login)
		users.POST("/logout", authenticate, r.AuthController.Logout)
		users.GET("/me", authenticate, r.AuthController.Me)
		users.GET("/:id", r.UserController.GetUser)
	}

	posts := router.Group("/posts")
	{
		posts.GET("", r.PostController.ListPosts)
		posts.GET("/:id", r.PostController.GetPost)
		posts.POST("", authenticate, r.PostController.CreatePost)
		posts.POST("/:id/like", authenticate, r.PostController.ToggleLike)
	}

	router.POST("/comments", authenticate, r.CommentController.CreateComment)

	if r.UploadController != nil {
		router.POST("/uploads/presign", authenticate, r.UploadController.GeneratePresignedURL)
	}

	if r.FeedController != nil {
		router.GET("/ws/feed", authenticate, r.FeedController.Subscribe)
	}

	return router
}
