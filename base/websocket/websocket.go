// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package websocket provides a small WebSocket client for talking
// to a fly-through server from Go, such as from the trace command.
package websocket

import (
	"github.com/gorilla/websocket"
	"github.com/knotfly/knotfly/base/errors"
)

// MessageTypes are the types of WebSocket data messages.
type MessageTypes int32

// TextMessage is a UTF-8 encoded text message, such as JSON.
const TextMessage MessageTypes = websocket.TextMessage

// Client represents a WebSocket client connection.
// You can use [Connect] to create a new Client.
type Client struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// done is a channel that is closed when the connection is closed.
	done chan struct{}
}

// Connect connects to a WebSocket server and returns a [Client].
func Connect(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, done: make(chan struct{})}, nil
}

// OnMessage sets a callback function to be called when a message is received.
// This function can only be called once. Read errors other than a normal
// closure are logged.
func (c *Client) OnMessage(f func(typ MessageTypes, msg []byte)) {
	go func() {
		defer func() {
			c.conn.Close()
			close(c.done)
		}()
		for {
			typ, msg, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					errors.Log(err)
				}
				return
			}
			f(MessageTypes(typ), msg)
		}
	}()
}

// Send sends a message to the WebSocket server with the given type and message.
func (c *Client) Send(typ MessageTypes, msg []byte) error {
	return c.conn.WriteMessage(int(typ), msg)
}

// SendJSON sends v encoded as JSON in a text message.
func (c *Client) SendJSON(v any) error {
	return c.conn.WriteJSON(v)
}

// Close cleanly closes the WebSocket connection.
// It does not directly trigger [Client.OnClose], but once the connection
// is closed, [Client.OnMessage] will trigger it.
func (c *Client) Close() error {
	return c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// OnClose sets a callback function to be called when the connection is closed.
// This function can only be called once, and only after [Client.OnMessage].
func (c *Client) OnClose(f func()) {
	go func() {
		<-c.done
		f()
	}()
}

// Done returns a channel that is closed when the connection is closed,
// once [Client.OnMessage] has been called.
func (c *Client) Done() <-chan struct{} {
	return c.done
}
