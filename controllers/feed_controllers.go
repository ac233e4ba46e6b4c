package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/quickbite/backend/feed"
	"github.com/quickbite/backend/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// LiveFeed upgrades the connection and streams order, delivery and
// payment updates until the client hangs up.
func LiveFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade: %v", err)
		return
	}

	role := utils.CurrentRole(c)
	feed.RegisterClient(conn, role)
	utils.InfoLogger.Printf("live feed client connected (role=%s)", role)

	defer feed.UnregisterClient(conn)
	for {
		// Reads drain pings and detect disconnects; the hub writes.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
