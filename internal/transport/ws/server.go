package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jloyd-c/bubble-chat/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type ChatSvc interface {
	Post(ctx context.Context, roomName, sender, body string) (*domain.Message, error)
	HistorySince(ctx context.Context, roomName string, since time.Time) ([]domain.Message, error)
}

type RetentionSvc interface {
	Cutoff() time.Time
	SweepBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Server struct {
	upgrader     websocket.Upgrader
	hub          *Hub
	chatSvc      ChatSvc
	retentionSvc RetentionSvc

	pingEvery  time.Duration
	sendBuffer int
	readLimit  int64
}

func NewServer(hub *Hub, chat ChatSvc, retention RetentionSvc) *Server {
	return &Server{
		hub:          hub,
		chatSvc:      chat,
		retentionSvc: retention,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery:  15 * time.Second,
		sendBuffer: 256,
		readLimit:  64 << 10,
	}
}

func (s *Server) SetPingEvery(d time.Duration) {
	if d > 0 {
		s.pingEvery = d
	}
}

func (s *Server) SetSendBuffer(n int) {
	if n > 0 {
		s.sendBuffer = n
	}
}

func (s *Server) SetReadLimit(n int64) {
	if n > 0 {
		s.readLimit = n
	}
}

// WS endpoint: GET /ws/chat/{room}
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")
	if room == "" {
		http.Error(w, "missing room name", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "room", room, "err", err)
		return
	}

	c := newWsConn(conn, room, s.sendBuffer)
	s.hub.Add(c)
	go c.writePump(s.pingEvery)

	slog.Info("ws session joined", "room", room, "session", c.sessionID)

	// Sweep and history replay share a single cutoff so a message is
	// never replayed and then swept (or swept yet replayed) within the
	// same join. Both are best-effort.
	cutoff := s.retentionSvc.Cutoff()
	if n, err := s.retentionSvc.SweepBefore(r.Context(), cutoff); err != nil {
		slog.Warn("ws retention sweep failed", "room", room, "err", err)
	} else if n > 0 {
		slog.Info("ws retention sweep", "room", room, "deleted", n)
	}
	if err := s.sendHistory(r.Context(), c, cutoff); err != nil {
		slog.Warn("ws send history failed", "room", room, "session", c.sessionID, "err", err)
	}

	s.readLoop(r.Context(), c)

	s.hub.Remove(c)
	_ = c.Close()
	slog.Info("ws session left", "room", room, "session", c.sessionID)
}

// sendHistory replays the retention window's messages to this client
// only, oldest first.
func (s *Server) sendHistory(ctx context.Context, c *wsConn, since time.Time) error {
	msgs, err := s.chatSvc.HistorySince(ctx, c.room, since)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		if err := c.Send(NewMessageFrame(m)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(s.readLimit)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("ws read error", "room", c.room, "session", c.sessionID, "err", err)
			}
			return
		}

		var in InboundFrame
		if err := json.Unmarshal(data, &in); err != nil {
			// malformed frame: drop it, keep the session alive
			slog.Warn("ws malformed frame", "room", c.room, "session", c.sessionID, "err", err)
			continue
		}

		text := strings.TrimSpace(in.Message)
		if text == "" {
			continue
		}

		// persist first, then broadcast the stored record so every
		// member sees the authoritative id and timestamp
		msg, err := s.chatSvc.Post(ctx, c.room, in.Sender, text)
		if err != nil {
			slog.Warn("ws chat post failed", "room", c.room, "session", c.sessionID, "err", err)
			continue
		}

		s.hub.Broadcast(c.groupKey, NewMessageFrame(*msg))
	}
}
