package postgres

import (
	"context"
	"time"

	"github.com/jloyd-c/bubble-chat/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Insert(ctx context.Context, roomID int64, sender, body string) (*domain.Message, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO messages (room_id, sender, body)
		VALUES ($1, $2, $3)
		RETURNING id, room_id, sender, body, created_at
	`, roomID, sender, body)

	var m domain.Message
	if err := row.Scan(&m.ID, &m.RoomID, &m.Sender, &m.Body, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListSince returns the room's messages with created_at >= since,
// oldest first. Ties on created_at are broken by id, which matches
// insertion order.
func (r *MessageRepository) ListSince(ctx context.Context, roomID int64, since time.Time) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, room_id, sender, body, created_at
		FROM messages
		WHERE room_id = $1 AND created_at >= $2
		ORDER BY created_at ASC, id ASC
	`, roomID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.Sender, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteOlderThan removes every message across all rooms with
// created_at < cutoff and reports how many were removed.
func (r *MessageRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM messages WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// Stats counts all stored messages and how many of them predate cutoff.
func (r *MessageRepository) Stats(ctx context.Context, cutoff time.Time) (total, old int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE created_at < $1)
		FROM messages
	`, cutoff).Scan(&total, &old)
	return total, old, err
}
