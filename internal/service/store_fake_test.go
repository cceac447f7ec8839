package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/jloyd-c/bubble-chat/internal/domain"
)

// fakeStore is an in-memory RoomStore + MessageStore for unit tests.
// Ids are monotonic, so insertion order matches id order like the
// real schema.
type fakeStore struct {
	mu         sync.Mutex
	rooms      map[string]*domain.Room
	nextRoomID int64
	msgs       []domain.Message
	nextMsgID  int64

	insertErr error
	listErr   error
	now       func() time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms: make(map[string]*domain.Room),
		now:   time.Now,
	}
}

func (f *fakeStore) GetOrCreate(ctx context.Context, name string) (*domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rm, ok := f.rooms[name]; ok {
		return rm, nil
	}
	f.nextRoomID++
	rm := &domain.Room{ID: f.nextRoomID, Name: name, CreatedAt: f.now()}
	f.rooms[name] = rm
	return rm, nil
}

func (f *fakeStore) Insert(ctx context.Context, roomID int64, sender, body string) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextMsgID++
	m := domain.Message{
		ID:        f.nextMsgID,
		RoomID:    roomID,
		Sender:    sender,
		Body:      body,
		CreatedAt: f.now(),
	}
	f.msgs = append(f.msgs, m)
	return &m, nil
}

func (f *fakeStore) ListSince(ctx context.Context, roomID int64, since time.Time) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Message
	for _, m := range f.msgs {
		if m.RoomID == roomID && !m.CreatedAt.Before(since) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.msgs[:0]
	var deleted int64
	for _, m := range f.msgs {
		if m.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	f.msgs = kept
	return deleted, nil
}

func (f *fakeStore) Stats(ctx context.Context, cutoff time.Time) (total, old int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.msgs {
		total++
		if m.CreatedAt.Before(cutoff) {
			old++
		}
	}
	return total, old, nil
}

// backdate shifts every stored message's timestamp into the past.
func (f *fakeStore) backdate(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.msgs {
		f.msgs[i].CreatedAt = f.msgs[i].CreatedAt.Add(-d)
	}
}
