package live

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// outboundQueueSize bounds the per-connection change buffer. A consumer
// that falls this far behind is dropped rather than blocking notifiers.
const outboundQueueSize = 64

// client is one /watch connection.
type client struct {
	srv  *Server
	conn *websocket.Conn

	out    chan Message
	done   chan struct{}
	closed atomic.Bool
}

func newClient(srv *Server, conn *websocket.Conn) *client {
	return &client{
		srv:  srv,
		conn: conn,
		out:  make(chan Message, outboundQueueSize),
		done: make(chan struct{}),
	}
}

// run streams the directory to the connection. The watcher is registered
// before the snapshot is built, so a change racing the snapshot is
// re-delivered after it rather than lost.
func (c *client) run() {
	detach := c.srv.dir.Watch(c.onChange)
	defer detach()

	snapshot := Message{Type: MessageSnapshot, Values: c.srv.values()}
	if err := c.writeMessage(snapshot); err != nil {
		c.srv.logger.Error("snapshot write failed", "error", err)
		c.close()
		return
	}

	go c.readLoop()
	c.writeLoop()
}

// onChange runs inside the cell's notification pass. It must never block,
// so the message goes onto the outbound queue or the client is dropped.
func (c *client) onChange(name string) {
	cell, ok := c.srv.dir.Get(name)
	if !ok {
		return
	}

	msg := Message{Type: MessageChange, Name: name, Value: cell.GetAny()}
	select {
	case c.out <- msg:
	default:
		c.srv.logger.Warn("outbound queue full, dropping client", "cell", name)
		c.close()
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(c.srv.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.out:
			if err := c.writeMessage(msg); err != nil {
				c.srv.logger.Debug("write failed, dropping client", "error", err)
				c.close()
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(c.srv.writeTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.close()
				return
			}

		case <-c.done:
			return
		}
	}
}

// readLoop drains the connection so close frames and pongs are processed.
// Clients never send data messages; anything received is discarded.
func (c *client) readLoop() {
	defer c.close()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.srv.logger.Debug("read error", "error", err)
			}
			return
		}
	}
}

func (c *client) writeMessage(msg Message) error {
	c.conn.SetWriteDeadline(time.Now().Add(c.srv.writeTimeout))
	return c.conn.WriteJSON(msg)
}

func (c *client) close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.done)
		c.conn.Close()
	}
}
