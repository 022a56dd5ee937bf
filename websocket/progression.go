package websocket

import (
	"context"
	"sync"

	"anima/internal/logger"
	"anima/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ProgressionClient is one open socket of a user watching their own progress.
type ProgressionClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON serialises writes; gorilla connections allow one writer at a time.
func (pc *ProgressionClient) SafeWriteJSON(v interface{}) error {
	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()
	return pc.Conn.WriteJSON(v)
}

// Hub routes progression events to the sockets of the user they belong to.
// A user may hold several sockets (tabs, devices).
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*ProgressionClient]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*ProgressionClient]struct{})}
}

func (h *Hub) Register(client *ProgressionClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[client.UserID]
	if !ok {
		set = make(map[*ProgressionClient]struct{})
		h.clients[client.UserID] = set
	}
	set[client] = struct{}{}
	logger.Log.Debug("progression client registered",
		zap.String("userID", client.UserID), zap.Int("sockets", len(set)))
}

func (h *Hub) Unregister(client *ProgressionClient) {
	h.mu.Lock()
	set := h.clients[client.UserID]
	_, present := set[client]
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.UserID)
	}
	h.mu.Unlock()

	if present {
		client.Conn.Close()
	}
}

// Deliver writes the event to every socket of its user. Sockets that fail
// to accept the write are dropped.
func (h *Hub) Deliver(event models.ProgressionEvent) {
	h.mu.RLock()
	targets := make([]*ProgressionClient, 0, len(h.clients[event.UserID]))
	for c := range h.clients[event.UserID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.SafeWriteJSON(event); err != nil {
			logger.Log.Debug("dropping progression client", zap.String("userID", c.UserID), zap.Error(err))
			h.Unregister(c)
		}
	}
}

// Publish delivers in process. Used when no Redis stream is configured.
func (h *Hub) Publish(_ context.Context, event models.ProgressionEvent) error {
	h.Deliver(event)
	return nil
}

// ClientCount reports how many sockets a user has open.
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
