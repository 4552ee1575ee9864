package notify

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gigboard/internal/auth"
	"gigboard/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS middleware in front of
	// the router; the upgrade itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn adapts a gorilla websocket connection to the hub's Conn.
// Writes are serialized; gorilla connections allow one concurrent writer.
type wsConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *wsConn) Send(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(event)
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}

type clientFrame struct {
	Action string `json:"action"`
}

// WSHandler upgrades GET /ws and registers the connection under the
// authenticated user's identity. The identity comes from the verified
// session, never from a client-sent frame, so a client cannot subscribe to
// another user's notifications. The connection stays registered until the
// socket drops or the client sends {"action":"close"}.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.Warn("ws: upgrade failed", map[string]any{"user_id": user.UserID, "error": err.Error()})
			return
		}

		conn := &wsConn{ws: ws}
		hub.Register(conn, user.UserID)
		utils.Info("ws: connection registered", map[string]any{"user_id": user.UserID})

		defer func() {
			hub.Unregister(conn, user.UserID)
			_ = ws.Close()
			utils.Info("ws: connection closed", map[string]any{"user_id": user.UserID})
		}()

		for {
			var frame clientFrame
			if err := ws.ReadJSON(&frame); err != nil {
				return
			}
			if frame.Action == "close" {
				return
			}
		}
	}
}
