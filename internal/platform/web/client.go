package web

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-maze/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
	eventBuffer    = 64
)

// inbound is one decoded browser frame, or a problem to report back.
type inbound struct {
	event  game.Event
	width  float64 // EventResize
	height float64
	err    string
}

// Client is a single browser connection driving its own session.
type Client struct {
	ID     string
	conn   *websocket.Conn
	send   chan []byte
	events chan inbound
	logger *log.Logger
}

func newClient(id string, conn *websocket.Conn, logger *log.Logger) *Client {
	return &Client{
		ID:     id,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		events: make(chan inbound, eventBuffer),
		logger: logger,
	}
}

// readPump decodes frames from the connection into the event channel. It
// cancels the connection context when the socket closes.
func (c *Client) readPump(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("websocket read error", "client", c.ID, "err", err)
			}
			return
		}

		in := decode(data)
		select {
		case c.events <- in:
		case <-ctx.Done():
			return
		}
	}
}

// decode turns a raw frame into a session event.
func decode(data []byte) inbound {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return inbound{err: "malformed message"}
	}

	switch msg.Type {
	case TypeResize:
		var rs ResizeMessage
		if err := json.Unmarshal(msg.Data, &rs); err != nil {
			return inbound{err: "malformed resize"}
		}
		return inbound{event: game.Event{Kind: game.EventResize}, width: rs.Width, height: rs.Height}

	case TypeKey:
		var km KeyMessage
		if err := json.Unmarshal(msg.Data, &km); err != nil {
			return inbound{err: "malformed key"}
		}
		dir, ok := game.ParseDirection(km.Direction)
		if !ok {
			return inbound{err: fmt.Sprintf("unknown direction %q", km.Direction)}
		}
		return inbound{event: game.DirectionEvent(dir)}

	case TypeStart:
		return inbound{event: game.Event{Kind: game.EventStart}}

	case TypeNext:
		return inbound{event: game.Event{Kind: game.EventNextLevel}}
	}

	return inbound{err: fmt.Sprintf("unknown message type %q", msg.Type)}
}

// writePump pumps queued frames to the connection and keeps it alive with
// pings. It exits when the send channel is closed.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendMessage queues a typed payload. Only the event loop goroutine sends.
func (c *Client) sendMessage(msgType string, payload any) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		c.logger.Error("failed to marshal message", "type", msgType, "err", err)
		return
	}
	c.queue(msg)
}

func (c *Client) queue(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to marshal message", "err", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("client send buffer full, dropping message", "client", c.ID, "type", msg.Type)
	}
}

// tickerScheduler implements game.Scheduler with a time.Ticker whose ticks
// are fed into the connection's event channel until ctx ends.
type tickerScheduler struct {
	ctx     context.Context
	events  chan<- inbound
	started bool
}

func (s *tickerScheduler) Start(interval time.Duration) {
	if s.started {
		return
	}
	s.started = true

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case s.events <- inbound{event: game.TickEvent(now)}:
				case <-s.ctx.Done():
					return
				}
			}
		}
	}()
}

// loop is the single goroutine that owns the session. It returns when ctx
// is cancelled, then closes the send channel so the write pump drains.
func (c *Client) loop(ctx context.Context, session *game.Session, r *wsRenderer) {
	defer close(c.send)

	session.Init()
	for {
		select {
		case <-ctx.Done():
			return
		case in := <-c.events:
			if in.err != "" {
				c.queue(NewErrorMessage(in.err))
				continue
			}
			if in.event.Kind == game.EventResize {
				r.setViewport(in.width, in.height)
			}
			session.Handle(in.event)
		}
	}
}
