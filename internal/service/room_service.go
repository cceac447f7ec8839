package service

import (
	"context"
	"fmt"

	"github.com/jloyd-c/bubble-chat/internal/domain"
)

type RoomService struct {
	rooms RoomStore
}

func NewRoomService(rooms RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

// GetOrCreate returns the named room, creating it lazily on first
// reference.
func (s *RoomService) GetOrCreate(ctx context.Context, name string) (*domain.Room, error) {
	room, err := s.rooms.GetOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("rooms.GetOrCreate: %w", err)
	}
	return room, nil
}
