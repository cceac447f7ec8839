package service

import (
	"context"
	"time"
)

// RetentionWindow is how long messages are kept before they become
// eligible for deletion.
const RetentionWindow = 10 * time.Minute

type RetentionStats struct {
	Total  int64
	Old    int64
	Recent int64
}

type RetentionService struct {
	messages MessageStore
	window   time.Duration
}

func NewRetentionService(messages MessageStore) *RetentionService {
	return &RetentionService{messages: messages, window: RetentionWindow}
}

// Cutoff computes the sweep threshold for this instant. Callers that
// both sweep and query history must compute the cutoff once and pass
// the same value to both, so a message is never replayed and then
// swept (or vice versa) within a single join.
func (s *RetentionService) Cutoff() time.Time {
	return time.Now().Add(-s.window)
}

// SweepBefore deletes every message older than cutoff across all rooms.
func (s *RetentionService) SweepBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.messages.DeleteOlderThan(ctx, cutoff)
}

// Stats reports message counts relative to cutoff without deleting.
func (s *RetentionService) Stats(ctx context.Context, cutoff time.Time) (RetentionStats, error) {
	total, old, err := s.messages.Stats(ctx, cutoff)
	if err != nil {
		return RetentionStats{}, err
	}
	return RetentionStats{Total: total, Old: old, Recent: total - old}, nil
}
