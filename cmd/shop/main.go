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
	"github.com/ikkim/storefeed/internal/scheduler"
	"github.com/ikkim/storefeed/internal/server"
	"github.com/ikkim/storefeed/pkg/logger"
	"github.com/ikkim/storefeed/pkg/rabbitmq"
	"github.com/ikkim/storefeed/web"
)

func main() {
	cfg, err := config.LoadFor(config.AppShop)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	server.SetupLogger(cfg)

	logger.Info("Starting shop server", map[string]interface{}{
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

	var events service.OrderEventPublisher = service.NoopOrderEventPublisher{}
	if cfg.RabbitMQ.Enabled() {
		pool, err := rabbitmq.NewChannelPool(cfg.RabbitMQ.URL, cfg.RabbitMQ.PoolSize, cfg.RabbitMQ.OrderQueue)
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", err)
		}
		defer pool.Close()
		events = service.NewQueueOrderEventPublisher(rabbitmq.NewPublisher(pool), cfg.RabbitMQ.OrderQueue)
	}

	// Repositories
	userRepo := repository.NewUserRepository(infra.DB)
	productRepo := repository.NewProductRepository(infra.DB)
	cartRepo := repository.NewCartRepository(infra.DB)
	orderRepo := repository.NewOrderRepository(infra.DB)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiry, infra.Revoker)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, infra.DB)
	orderService := service.NewOrderService(orderRepo, cartRepo, infra.DB, events)

	cleanup := scheduler.NewCartCleanupScheduler(cartService, cfg.Scheduler.CartCleanupSchedule)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("Failed to start cart cleanup scheduler", err)
	}
	defer cleanup.Stop()

	r := &router.ShopRouter{
		AuthController:    controller.NewAuthController(authService, userService),
		ProductController: controller.NewProductController(productService),
		CartController:    controller.NewCartController(cartService),
		OrderController:   controller.NewOrderController(orderService),
		AuthMiddleware:    middleware.NewAuthMiddleware(cfg.JWT.Secret, userService, infra.Blacklist),
		Assets:            web.Shop(),
		Config:            cfg,
	}
	if infra.Uploads != nil {
		r.UploadController = controller.NewUploadController(infra.Uploads, "products")
	}

	if err := server.Run(ctx, r.Setup(), cfg.Server.Port); err != nil {
		logger.Error("Shop server stopped with error", err)
	}
}
