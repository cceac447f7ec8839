package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	errConnClosed    = errors.New("connection closed")
	errSendQueueFull = errors.New("send queue full")
)

// wsConn is one client session's transport half: the raw socket plus a
// buffered outbound queue drained by writePump, so one slow client
// never stalls a room-wide broadcast.
type wsConn struct {
	conn      *websocket.Conn
	room      string
	groupKey  string
	sessionID string

	send      chan OutboundFrame
	closed    chan struct{}
	closeOnce sync.Once
}

func newWsConn(c *websocket.Conn, room string, buffer int) *wsConn {
	return &wsConn{
		conn:      c,
		room:      room,
		groupKey:  GroupKey(room),
		sessionID: uuid.NewString(),
		send:      make(chan OutboundFrame, buffer),
		closed:    make(chan struct{}),
	}
}

// Send enqueues frame for delivery without blocking. A closed
// connection or a full queue is reported as an error; the caller
// decides whether that is worth logging.
func (c *wsConn) Send(frame OutboundFrame) error {
	select {
	case <-c.closed:
		return errConnClosed
	default:
	}

	select {
	case c.send <- frame:
		return nil
	case <-c.closed:
		return errConnClosed
	default:
		return errSendQueueFull
	}
}

// writePump drains the send queue onto the socket and keeps the
// connection alive with pings. It exits when the connection closes.
func (c *wsConn) writePump(pingEvery time.Duration) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.conn.WriteJSON(frame); err != nil {
				_ = c.Close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				_ = c.Close()
				return
			}
		case <-c.closed:
			return
		}
	}
}

// Close is idempotent; it unblocks the write pump and any pending
// Send, and closes the underlying socket, which in turn unblocks the
// read loop.
func (c *wsConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *wsConn) GroupKey() string  { return c.groupKey }
func (c *wsConn) SessionID() string { return c.sessionID }
