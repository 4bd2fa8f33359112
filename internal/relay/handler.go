package relay

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The customer display and the cashier terminal run on different
	// origins; the channel carries display state only, so any origin may
	// join its own session room.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler upgrades GET /ws?userId=<key> and attaches the connection to the
// session room for that key.
func Handler(hub *Hub, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Query("userId")
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		cl := &client{
			hub:    hub,
			room:   key,
			conn:   conn,
			send:   make(chan []byte, 32),
			logger: logger,
		}
		hub.register <- cl

		go cl.writePump()
		go cl.readPump()
	}
}
