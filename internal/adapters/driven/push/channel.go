// Package push implements the push channel port over a WebSocket
// connection to the backend's event endpoint.
//
// Wire format: one JSON frame per event, {"event": "...", "complaint":
// {...}}, matching the vocabulary the backend broadcasts on every
// mutation. Delivery is at-least-once and unordered relative to REST
// responses; consumers are built around idempotent refreshes, so this
// adapter makes no ordering or dedup effort.
package push

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
	"github.com/civita-labs/civita-cli/internal/logger"
)

const (
	// initialBackoff is the first reconnect delay.
	initialBackoff = time.Second

	// maxBackoff caps the reconnect delay.
	maxBackoff = 30 * time.Second

	// eventBuffer absorbs short bursts while a consumer is busy
	// refreshing. Past it, events are dropped; a dropped event only
	// costs one redundant refresh hint.
	eventBuffer = 16
)

// Ensure Channel implements the port.
var _ driven.PushChannel = (*Channel)(nil)

// Channel is a WebSocket push channel. It owns the whole connection
// lifecycle: it dials, reads, and redials with backoff until Close is
// called. Consumers only ever see the event stream.
type Channel struct {
	url    string
	dialer *websocket.Dialer
	events chan domain.Event

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
	done   chan struct{}
}

// wireEvent is one frame on the socket.
type wireEvent struct {
	Event     string            `json:"event"`
	Complaint *domain.Complaint `json:"complaint"`
}

// Dial opens a push channel to the given WebSocket URL, e.g.
// "ws://127.0.0.1:5000/events". The initial connection attempt is
// bounded by ctx; after that the channel keeps itself connected.
func Dial(ctx context.Context, url string) (*Channel, error) {
	c := &Channel{
		url:    url,
		dialer: websocket.DefaultDialer,
		events: make(chan domain.Event, eventBuffer),
		done:   make(chan struct{}),
	}

	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c.conn = conn

	go c.run()
	return c, nil
}

// Events returns the stream of push events.
func (c *Channel) Events() <-chan domain.Event {
	return c.events
}

// Close tears down the connection and closes the event stream.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

// run reads frames until Close, redialling with backoff on failure.
func (c *Channel) run() {
	defer close(c.events)

	backoff := initialBackoff
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()

		if conn != nil {
			c.readAll(conn)
		}
		if c.isClosed() {
			return
		}

		logger.Info("push: connection lost, reconnecting in %s", backoff)
		select {
		case <-c.done:
			return
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > maxBackoff {
			backoff = maxBackoff
		}

		conn, _, err := c.dialer.Dial(c.url, nil)
		if err != nil {
			c.mu.Lock()
			c.conn = nil
			c.mu.Unlock()
			continue
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			_ = conn.Close()
			return
		}
		c.conn = conn
		c.mu.Unlock()
		backoff = initialBackoff
	}
}

// readAll consumes frames from one connection until it fails.
func (c *Channel) readAll(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var we wireEvent
		if err := json.Unmarshal(data, &we); err != nil {
			logger.Warn("push: dropping unparseable frame: %v", err)
			continue
		}

		event := domain.Event{Kind: domain.EventKind(we.Event), Complaint: we.Complaint}
		select {
		case c.events <- event:
		default:
			logger.Warn("push: consumer busy, dropping %s hint", event.Kind)
		}
	}
}

func (c *Channel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
