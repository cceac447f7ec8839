package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jloyd-c/bubble-chat/internal/domain"
	"github.com/jloyd-c/bubble-chat/internal/service"

	"github.com/stretchr/testify/require"
)

func TestChatService_Post_PersistsAndReturnsRecord(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	svc := service.NewChatService(store, store)

	msg, err := svc.Post(context.Background(), "ccs", "Bob", "hi")
	req.NoError(err)
	req.Equal("Bob", msg.Sender)
	req.Equal("hi", msg.Body)
	req.Positive(msg.ID)
	req.False(msg.CreatedAt.IsZero())

	// the room was created lazily on first post
	room, err := store.GetOrCreate(context.Background(), "ccs")
	req.NoError(err)
	req.Equal(room.ID, msg.RoomID)
}

func TestChatService_Post_TrimsBodyAndDefaultsSender(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	svc := service.NewChatService(store, store)

	msg, err := svc.Post(context.Background(), "ccs", "  ", "  hello  ")
	req.NoError(err)
	req.Equal("hello", msg.Body)
	req.Equal(domain.DefaultSender, msg.Sender)
}

func TestChatService_Post_EmptyBodyNeverReachesStore(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	svc := service.NewChatService(store, store)

	for _, body := range []string{"", "   ", "\n\t "} {
		_, err := svc.Post(context.Background(), "ccs", "Bob", body)
		req.ErrorIs(err, domain.ErrEmptyMessage)
	}
	req.Empty(store.msgs)
}

func TestChatService_Post_StoreErrorIsWrapped(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	store.insertErr = errors.New("connection refused")
	svc := service.NewChatService(store, store)

	_, err := svc.Post(context.Background(), "ccs", "Bob", "hi")
	req.ErrorIs(err, store.insertErr)
}

func TestChatService_HistorySince_IncludesFreshMessageOldestFirst(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	svc := service.NewChatService(store, store)
	ctx := context.Background()

	first, err := svc.Post(ctx, "ccs", "Bob", "one")
	req.NoError(err)
	second, err := svc.Post(ctx, "ccs", "Ann", "two")
	req.NoError(err)

	// threshold at or before the first message's timestamp sees both
	msgs, err := svc.HistorySince(ctx, "ccs", first.CreatedAt)
	req.NoError(err)
	req.Len(msgs, 2)
	req.Equal(first.ID, msgs[0].ID)
	req.Equal(second.ID, msgs[1].ID)
}

func TestChatService_HistorySince_ScopedToRoom(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	svc := service.NewChatService(store, store)
	ctx := context.Background()

	_, err := svc.Post(ctx, "ccs", "Bob", "ccs message")
	req.NoError(err)
	_, err = svc.Post(ctx, "cn", "Ann", "cn message")
	req.NoError(err)

	msgs, err := svc.HistorySince(ctx, "cn", time.Time{})
	req.NoError(err)
	req.Len(msgs, 1)
	req.Equal("cn message", msgs[0].Body)
}
