package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jloyd-c/bubble-chat/internal/domain"
)

// RoomStore is the slice of the room repository the services need.
// Rooms are get-or-created, never rejected.
type RoomStore interface {
	GetOrCreate(ctx context.Context, name string) (*domain.Room, error)
}

type MessageStore interface {
	Insert(ctx context.Context, roomID int64, sender, body string) (*domain.Message, error)
	ListSince(ctx context.Context, roomID int64, since time.Time) ([]domain.Message, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Stats(ctx context.Context, cutoff time.Time) (total, old int64, err error)
}

const maxBodyLen = 4000

type ChatService struct {
	rooms    RoomStore
	messages MessageStore
}

func NewChatService(rooms RoomStore, messages MessageStore) *ChatService {
	return &ChatService{rooms: rooms, messages: messages}
}

// Post persists one message and returns the stored record with its
// server-assigned id and timestamp. An empty (after trimming) body is
// rejected with domain.ErrEmptyMessage; callers on the hot path check
// for emptiness themselves and never reach the store.
func (s *ChatService) Post(ctx context.Context, roomName, sender, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(body) > maxBodyLen {
		return nil, errors.New("message too long")
	}
	sender = strings.TrimSpace(sender)
	if sender == "" {
		sender = domain.DefaultSender
	}

	room, err := s.rooms.GetOrCreate(ctx, roomName)
	if err != nil {
		return nil, fmt.Errorf("rooms.GetOrCreate: %w", err)
	}

	msg, err := s.messages.Insert(ctx, room.ID, sender, body)
	if err != nil {
		return nil, fmt.Errorf("messages.Insert: %w", err)
	}
	return msg, nil
}

// HistorySince returns the room's messages created at or after since,
// oldest first. The room is created lazily on first reference.
func (s *ChatService) HistorySince(ctx context.Context, roomName string, since time.Time) ([]domain.Message, error) {
	room, err := s.rooms.GetOrCreate(ctx, roomName)
	if err != nil {
		return nil, fmt.Errorf("rooms.GetOrCreate: %w", err)
	}
	return s.messages.ListSince(ctx, room.ID, since)
}
