package router

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/config"
	"github.com/ikkim/storefeed/internal/middleware"
)

// newEngine builds the gin engine both binaries share: recovery, request
// logging, CORS and the health probe
func newEngine(cfg *config.Config, name string) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": name + " API is running",
		})
	})

	return router
}

// serveFrontend mounts an embedded front end at / with its assets under /static
func serveFrontend(router *gin.Engine, assets fs.FS) {
	if assets == nil {
		return
	}
	files := http.FS(assets)
	router.StaticFS("/static", files)
	router.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", files)
	})
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
