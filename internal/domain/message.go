package domain

import "time"

// DefaultSender is the display name used when an inbound frame
// carries no sender.
const DefaultSender = "Anonymous"

type Message struct {
	ID        int64     `db:"id"`
	RoomID    int64     `db:"room_id"`
	Sender    string    `db:"sender"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
