package relay

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"alerta360-backend/pkg/logger"
)

// Handler upgrades HTTP requests to websocket connections and runs them
// against the relay.
type Handler struct {
	relay *Relay
	log   *logger.Logger
}

func NewHandler(relay *Relay, log *logger.Logger) *Handler {
	return &Handler{relay: relay, log: log}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Identity is client-supplied over the socket; any origin may
	// connect, matching the permissive CORS of the HTTP surface.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *Handler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorf("ws: upgrade failed: %v", err)
		return
	}

	client := NewClient(conn, h.relay, h.log)
	h.log.Infof("ws: client connected: %s", client.session.ID)

	go client.WritePump()
	client.ReadPump(c.Request.Context())
}
