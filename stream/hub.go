// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultBuffer is the number of messages queued per client before
// messages to it are dropped.
const DefaultBuffer = 8

// writeWait is the time allowed to write a message to a client.
const writeWait = 5 * time.Second

// Hub is an [http.Handler] that upgrades requests to websockets and
// sends every published snapshot to all connected clients as JSON.
// Publishing never blocks: a client that falls behind loses messages.
type Hub struct {

	// Upgrader upgrades the requests.
	Upgrader websocket.Upgrader

	// Buffer is the number of messages queued per client.
	Buffer int

	// Dropped counts messages not delivered to slow clients.
	Dropped atomic.Int64

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// NewHub returns a new hub accepting connections from any origin.
func NewHub() *Hub {
	return &Hub{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Buffer:  DefaultBuffer,
		clients: map[*client]struct{}{},
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("stream.Hub.ServeHTTP", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, max(h.Buffer, 1)), done: make(chan struct{})}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	slog.Info("stream: client connected", "remote", r.RemoteAddr)

	go h.write(c)
	h.read(c)
}

// read discards incoming messages until the connection fails.
func (h *Hub) read(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("stream.Hub.read", "err", err)
			}
			return
		}
	}
}

func (h *Hub) write(c *client) {
	defer c.conn.Close()
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Debug("stream.Hub.write", "err", err)
				h.remove(c)
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.done)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish sends the snapshot to all clients.
func (h *Hub) Publish(s *Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			h.Dropped.Add(1)
		}
	}
	return nil
}

// Close disconnects all clients; later connections are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.done)
	}
}
