package handler

import (
	"net/http"
	"strings"

	"dyce/backend/internal/models"
	"dyce/backend/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and registers the client for
// realtime event delivery. The token comes from the Authorization header or,
// for browser websocket clients that cannot set headers, the token query
// parameter.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenStr = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if tokenStr == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing token"})
		return
	}

	userID, err := parseToken(tokenStr, h.JWTSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upgrade connection"})
		return
	}

	client := &realtime.WebSocketClient{
		UserID:  userID,
		Conn:    conn,
		Manager: h.Hub,
		Send:    make(chan models.Event, 64),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
