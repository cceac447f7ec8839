package ws

import (
	"log/slog"
	"sync"
)

type Conn interface {
	Send(frame OutboundFrame) error
	Close() error
	GroupKey() string
	SessionID() string
}

// Hub is the room registry: group key -> set of live connections.
// A connection belongs to at most one group.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{groups: make(map[string]map[Conn]struct{})}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.groups[c.GroupKey()]
	if !ok {
		g = make(map[Conn]struct{})
		h.groups[c.GroupKey()] = g
	}
	g[c] = struct{}{}
}

// Remove is a no-op for connections that are not registered, so
// disconnect races stay harmless.
func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if g, ok := h.groups[c.GroupKey()]; ok {
		delete(g, c)
		if len(g) == 0 {
			delete(h.groups, c.GroupKey())
		}
	}
}

// Broadcast fans frame out to every connection registered under
// groupKey at the time of the call. A failed delivery is logged and
// skipped; it never aborts the rest of the batch.
func (h *Hub) Broadcast(groupKey string, frame OutboundFrame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.groups[groupKey] {
		if err := c.Send(frame); err != nil {
			slog.Warn("ws broadcast delivery failed",
				"group", groupKey, "session", c.SessionID(), "err", err)
		}
	}
}

// Members reports the current size of a group.
func (h *Hub) Members(groupKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.groups[groupKey])
}
