package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// writeTimeout bounds one frame write to a subscriber
const writeTimeout = 5 * time.Second

// liveFrame is the wire shape of one progress broadcast
type liveFrame struct {
	models.MigrationRun
	Final bool `json:"final"`
}

// LiveHub streams migration progress to websocket subscribers. Slow or dead
// subscribers are dropped rather than allowed to stall a broadcast.
type LiveHub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	// serializes broadcasts; gorilla allows one concurrent writer per conn
	sendMu sync.Mutex
}

// NewLiveHub creates an empty hub
func NewLiveHub() *LiveHub {
	return &LiveHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The host filter middleware already gates who reaches us
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler upgrades the request and registers the subscriber
func (h *LiveHub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Debug(fmt.Sprintf("Fallo al actualizar conexión websocket: %v", err), "WebServer")
			return
		}

		h.mu.Lock()
		h.clients[conn] = struct{}{}
		total := len(h.clients)
		h.mu.Unlock()

		logger.Info(fmt.Sprintf("Suscriptor de progreso conectado (%d activos)", total), "WebServer")

		// Reads only serve to detect the close
		go func() {
			defer h.drop(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// Publish broadcasts the snapshot to every subscriber
func (h *LiveHub) Publish(run models.MigrationRun, final bool) {
	data, err := json.Marshal(liveFrame{MigrationRun: run, Final: final})
	if err != nil {
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	h.sendMu.Lock()
	defer h.sendMu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(conn)
		}
	}
}

// SubscriberCount returns the number of connected subscribers
func (h *LiveHub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// drop removes and closes a subscriber
func (h *LiveHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()

	if ok {
		conn.Close()
	}
}
