// Package server holds the startup and shutdown steps shared by the shop and social binaries.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ikkim/storefeed/config"
	"github.com/ikkim/storefeed/internal/app/service"
	"github.com/ikkim/storefeed/internal/db"
	"github.com/ikkim/storefeed/internal/middleware"
	"github.com/ikkim/storefeed/internal/storage"
	"github.com/ikkim/storefeed/pkg/logger"
	"github.com/ikkim/storefeed/pkg/redis"
	"gorm.io/gorm"
)

// ShutdownTimeout bounds how long in-flight requests may run after a stop signal
const ShutdownTimeout = 10 * time.Second

// Infra is the connected backing services. Blacklist, Revoker and Uploads
// stay nil when their backend is not configured.
type Infra struct {
	DB        *gorm.DB
	Blacklist middleware.TokenBlacklist
	Revoker   service.TokenRevoker
	Uploads   *storage.S3Storage
}

// SetupLogger initializes the global logger from cfg
func SetupLogger(cfg *config.Config) {
	logger.Initialize(logger.Config{
		Level:       cfg.LogLevel(),
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})
}

// Bootstrap connects the database (migrating and seeding it) and the optional
// Redis and S3 backends
func Bootstrap(ctx context.Context, cfg *config.Config) (*Infra, error) {
	if err := db.Initialize(&cfg.Database); err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	infra := &Infra{DB: db.GetDB()}

	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			return nil, err
		}
		blacklist := redis.NewTokenBlacklist(redis.GetClient())
		infra.Blacklist = blacklist
		infra.Revoker = blacklist
	} else {
		logger.Warn("REDIS_HOST not set, logout will not revoke tokens")
	}

	if cfg.S3.Enabled() {
		uploads, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		infra.Uploads = uploads
	}

	return infra, nil
}

// Close releases the connections opened by Bootstrap
func (i *Infra) Close() {
	if err := redis.Close(); err != nil {
		logger.Error("Failed to close Redis connection", err)
	}
	if err := db.Close(); err != nil {
		logger.Error("Failed to close database connection", err)
	}
}

// Run serves handler on port until ctx is cancelled, then drains in-flight
// requests for at most ShutdownTimeout
func Run(ctx context.Context, handler http.Handler, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("Server stopped successfully")
	return nil
}
