package ws

import (
	"time"

	"github.com/jloyd-c/bubble-chat/internal/domain"
)

// TypeMessage marks a chat message frame; other event types may be
// added later.
const TypeMessage = "message"

// InboundFrame is what clients send over the socket.
type InboundFrame struct {
	Message string `json:"message"`
	Sender  string `json:"sender,omitempty"`
}

// OutboundFrame is pushed to clients, both for live broadcast and for
// history replay on join.
type OutboundFrame struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"` // server time of persistence
	MessageID int64  `json:"message_id"`
}

func NewMessageFrame(m domain.Message) OutboundFrame {
	return OutboundFrame{
		Type:      TypeMessage,
		Message:   m.Body,
		Sender:    m.Sender,
		Timestamp: m.CreatedAt.Format(time.RFC3339),
		MessageID: m.ID,
	}
}

// GroupKey derives the hub key a room's sessions are registered under.
func GroupKey(room string) string {
	return "chat_" + room
}
