package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/storefeed/config"
	"github.com/ikkim/storefeed/internal/app/controller"
	"github.com/ikkim/storefeed/internal/app/repository"
	"github.com/ikkim/storefeed/internal/app/service"
	"github.com/ikkim/storefeed/internal/middleware"
	"github.com/ikkim/storefeed/internal/router"
	"github.com/ikkim/storefeed/internal/server"
	"github.com/ikkim/storefeed/internal/websocket"
	"github.com/ikkim/storefeed/pkg/logger"
	"github.com/ikkim/storefeed/web"
)

func main() {
	cfg, err := config.LoadFor(config.AppSocial)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	server.SetupLogger(cfg)

	logger.Info("Starting social server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"pid":         os.Getpid(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	infra, err := server.Bootstrap(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize infrastructure", err)
	}
	defer infra.Close()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Repositories
	userRepo := repository.NewUserRepository(infra.DB)
	postRepo := repository.NewPostRepository(infra.DB)
	commentRepo := repository.NewCommentRepository(infra.DB)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiry, infra.Revoker)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, infra.DB, hub)
	commentService := service.NewCommentService(commentRepo, postRepo, hub)

	r := &router.SocialRouter{
		AuthController:    controller.NewAuthController(authService, userService),
		UserController:    controller.NewUserController(userService),
		PostController:    controller.NewPostController(postService),
		CommentController: controller.NewCommentController(commentService),
		FeedController:    controller.NewFeedController(hub, cfg.CORS.AllowedOrigins),
		AuthMiddleware:    middleware.NewAuthMiddleware(cfg.JWT.Secret, userService, infra.Blacklist),
		Assets:            web.Social(),
		Config:            cfg,
	}
	if infra.Uploads != nil {
		r.UploadController = controller.NewUploadController(infra.Uploads, "posts")
	}

	if err := server.Run(ctx, r.Setup(), cfg.Server.Port); err != nil {
		logger.Error("Social server stopped with error", err)
	}
}
