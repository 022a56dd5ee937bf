package websocket

import (
	"net/http"
	"strings"

	"anima/internal/logger"
	"anima/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressionWebSocketHandler streams the caller's own progression events.
// Browsers cannot set headers on a WebSocket handshake, so the token may
// also come from the "token" query parameter.
func ProgressionWebSocketHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		if parts := strings.Split(c.GetHeader("Authorization"), " "); len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			return
		}

		claims, err := utils.ParseJWTToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &ProgressionClient{Conn: conn, UserID: claims.UserID}
		hub.Register(client)
		defer hub.Unregister(client)

		if err := client.SafeWriteJSON(gin.H{
			"type":    "connected",
			"message": "Connected to progression updates",
			"userId":  claims.UserID,
		}); err != nil {
			return
		}

		// The read loop only detects disconnects; clients send nothing meaningful.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Log.Debug("progression websocket closed", zap.Error(err))
				}
				return
			}
		}
	}
}
