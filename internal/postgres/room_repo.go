package postgres

import (
	"context"

	"github.com/jloyd-c/bubble-chat/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetOrCreate returns the room with the given name, inserting it first if
// it does not exist yet. The upsert keeps concurrent first-joins from
// racing each other.
func (r *RoomRepository) GetOrCreate(ctx context.Context, name string) (*domain.Room, error) {
	query := `
		INSERT INTO rooms (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at`

	var rm domain.Room
	err := r.db.QueryRow(ctx, query, name).Scan(&rm.ID, &rm.Name, &rm.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}
