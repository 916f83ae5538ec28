package handler

import (
	"errors"
	"net/http"

	"gocart/backend/internal/trackhub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Lock down in production!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the HTTP connection to the tracking WebSocket.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	tokenString := authHeader[7:]

	userID, role, err := h.validateToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := trackhub.NewWebSocketClient(conn, userID, role, h.Hub, h.Cfg)

	sess, err := h.Hub.Connect(client)
	if err != nil {
		code := websocket.ClosePolicyViolation
		if errors.Is(err, trackhub.ErrResourceExhausted) {
			code = websocket.CloseTryAgainLater
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, "connection refused"))
		conn.Close()
		return
	}
	client.Session = sess

	// Run starts the pumps; the client re-joins its order rooms itself after
	// reconnecting, the server keeps no subscription state across connections.
	client.Run()
}
