package ipc

import (
	"log/slog"
	"net"

	"github.com/google/uuid"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection is one simulator runner talking to us. Each controlled wizard
// gets its own connection, identified after the hello handshake.
type Connection struct {
	ID       string
	Player   string
	conn     net.Conn
	handlers map[string]Handler

	received int // frames read
	replied  int // frames written
}

func NewConnection(conn net.Conn, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		ID:       uuid.NewString(),
		conn:     conn,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// ReadLoop serves frames until the runner hangs up or a reply can't be
// written, then closes the conn.
func (c *Connection) ReadLoop() {
	defer c.conn.Close()
	log := slog.With("conn", c.ID)

	for {
		env, err := ReadEnvelope(c.conn)
		if err != nil {
			log.Info("connection closed", "player", c.Player, "received", c.received, "replied", c.replied, "reason", err)
			return
		}
		c.received++

		resp, ok := c.dispatch(log, env)
		if !ok || resp == nil {
			continue
		}
		if err := WriteEnvelope(c.conn, *resp); err != nil {
			log.Error("reply failed, dropping connection", "type", resp.Type, "error", err)
			return
		}
		c.replied++
	}
}

// dispatch routes env to its handler. ok is false when there is no handler
// or the handler failed; both are logged and the frame is dropped.
func (c *Connection) dispatch(log *slog.Logger, env Envelope) (resp *Envelope, ok bool) {
	handler, found := c.handlers[env.Type]
	if !found {
		log.Warn("no handler for message type", "type", env.Type)
		return nil, false
	}
	resp, err := handler(env)
	if err != nil {
		log.Error("handler error", "type", env.Type, "player", c.Player, "error", err)
		return nil, false
	}
	return resp, true
}

// Close closes the underlying connection, which ends ReadLoop.
func (c *Connection) Close() error {
	return c.conn.Close()
}
