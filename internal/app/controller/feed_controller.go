package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ikkim/storefeed/internal/middleware"
	ws "github.com/ikkim/storefeed/internal/websocket"
)

type FeedController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewFeedController accepts upgrades from allowedOrigins; "*" allows any origin
func NewFeedController(hub *ws.Hub, allowedOrigins []string) *FeedController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &FeedController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Subscribe upgrades to a websocket that receives every feed event
// GET /ws/feed?token=
func (ctrl *FeedController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("Failed to upgrade feed connection", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}

	ctrl.hub.Serve(conn, userID)

	log.Info("Feed connection established", map[string]interface{}{
		"user_id": userID,
	})
}
