// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stream

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"veroengine.org/core/base/errors"
)

// Client receives the snapshots sent by a [Hub].
// You can use [Dial] to create a new Client.
type Client struct {
	conn *websocket.Conn

	// done is closed when the connection is closed.
	done chan struct{}

	mu      sync.Mutex
	started bool
	closing bool
}

// Dial connects to the hub at the given websocket URL.
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, done: make(chan struct{})}, nil
}

// OnSnapshot starts receiving snapshots and calls f with each of them,
// on a goroutine of the client. Messages that are not snapshots are
// logged and skipped. It must be called exactly once.
func (c *Client) OnSnapshot(f func(s *Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.closing {
		return
	}
	c.started = true
	go func() {
		defer close(c.done)
		defer c.conn.Close()
		for {
			_, msg, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					errors.Log(err)
				}
				return
			}
			s := &Snapshot{}
			if errors.Log(json.Unmarshal(msg, s)) != nil {
				continue
			}
			f(s)
		}
	}()
}

// Done returns a channel that is closed once [Client.OnSnapshot] has
// stopped receiving because the connection closed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close asks the hub to close the connection; [Client.Done] is
// closed once it has. If the client was never receiving, the
// connection is closed right away.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closing {
		return nil
	}
	c.closing = true
	err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if !c.started {
		err = errors.Join(err, c.conn.Close())
		close(c.done)
	}
	return err
}
