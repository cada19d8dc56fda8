package websockets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const localWriteTimeout = 5 * time.Second

type localConn struct {
	userID string
	mu     sync.Mutex
	conn   *websocket.Conn
}

// LocalHub delivers messages to WebSocket clients connected directly to the
// development server. It stands in for API Gateway when no endpoint is set.
type LocalHub struct {
	mu    sync.RWMutex
	conns map[string]*localConn
}

// NewLocalHub creates an empty hub.
func NewLocalHub() *LocalHub {
	return &LocalHub{conns: make(map[string]*localConn)}
}

var _ Publisher = (*LocalHub)(nil)

// Register attaches an upgraded connection to the hub.
func (h *LocalHub) Register(connectionID, userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[connectionID] = &localConn{userID: userID, conn: conn}
}

// Unregister detaches a connection. It does not close it.
func (h *LocalHub) Unregister(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connectionID)
}

// Len returns the number of registered connections.
func (h *LocalHub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Publish writes message to the matching local connections.
func (h *LocalHub) Publish(ctx context.Context, message Message) error {
	h.mu.RLock()
	targets := make(map[string]*localConn, len(h.conns))
	for id, c := range h.conns {
		if message.UserID == "" || c.userID == message.UserID {
			targets[id] = c
		}
	}
	h.mu.RUnlock()

	for id, c := range targets {
		c.mu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(localWriteTimeout))
		err := c.conn.WriteJSON(message)
		c.mu.Unlock()
		if err != nil {
			slog.Info("dropping local connection", "connectionId", id, "error", err)
			h.Unregister(id)
		}
	}
	return nil
}
