package notifications

import (
	"context"
	"errors"
	"sync"

	"filmorate/internal/middleware"
	"filmorate/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerUser = 8
	maxTotalConns   = 10000
)

var (
	// ErrServerConnLimit is returned when the hub is full.
	ErrServerConnLimit = errors.New("server connection limit reached")
	// ErrUserConnLimit is returned when a user has too many live feeds open.
	ErrUserConnLimit = errors.New("user connection limit reached")
)

// FeedHub maps a watched user id to the websocket clients following that feed.
type FeedHub struct {
	mu         sync.RWMutex
	conns      map[int64]map[*Client]struct{}
	totalConns int
	closed     bool
}

// NewFeedHub creates an empty hub.
func NewFeedHub() *FeedHub {
	return &FeedHub{conns: make(map[int64]map[*Client]struct{})}
}

// Register adds a connection following userID's feed.
func (h *FeedHub) Register(userID int64, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || h.totalConns >= maxTotalConns {
		return nil, ErrServerConnLimit
	}
	m, ok := h.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[userID] = m
	}
	if len(m) >= maxConnsPerUser {
		return nil, ErrUserConnLimit
	}

	client := newClient(h, conn, userID)
	m[client] = struct{}{}
	h.totalConns++
	observability.FeedSubscribers.Inc()
	return client, nil
}

// UnregisterClient removes the client and closes its send channel. Calling it
// twice for the same client is safe.
func (h *FeedHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.UserID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	close(client.Send)
	h.totalConns--
	observability.FeedSubscribers.Dec()
	if len(m) == 0 {
		delete(h.conns, client.UserID)
	}
}

// Subscribers returns the number of clients following userID.
func (h *FeedHub) Subscribers(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Broadcast sends message to every client following userID and returns how
// many accepted it.
func (h *FeedHub) Broadcast(userID int64, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for c := range h.conns[userID] {
		if c.TrySend(message) {
			delivered++
		}
	}
	return delivered
}

// StartWiring forwards every published feed event to the matching subscribers.
func (h *FeedHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartFeedSubscriber(ctx, func(userID int64, payload string) {
		h.Broadcast(userID, []byte(payload))
	})
}

// Shutdown closes every send channel; each write pump then sends a close
// frame and drops its connection.
func (h *FeedHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	closedClients := 0
	for _, clients := range h.conns {
		for client := range clients {
			close(client.Send)
			observability.FeedSubscribers.Dec()
			closedClients++
		}
	}
	if closedClients > 0 {
		middleware.Logger.Info("closed live feed subscribers", "count", closedClients)
	}
	h.conns = make(map[int64]map[*Client]struct{})
	h.totalConns = 0
	return nil
}
