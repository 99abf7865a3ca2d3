// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server serves fly-through sessions to browsers over WebSocket.
// Each connection gets its own compositor; the browser sends scroll,
// pointer and resize messages and receives a frame every tick, plus
// navigation requests when a hotspot is clicked.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/knotfly/knotfly/base/errors"
	"github.com/knotfly/knotfly/compositor"
	"github.com/knotfly/knotfly/config"
	"github.com/knotfly/knotfly/events"
	"github.com/knotfly/knotfly/pick"
	"github.com/mitchellh/go-homedir"
)

// Server serves fly-through sessions.
type Server struct {

	// Config returns the config for a new session. It is called once
	// per connection, so a reloaded config applies to new sessions only.
	Config func() *config.Config

	// Upgrader upgrades HTTP requests to WebSocket connections.
	Upgrader websocket.Upgrader

	sessions atomic.Int64
}

// New returns a new server using the given config source.
func New(cfg func() *config.Config) *Server {
	return &Server{Config: cfg}
}

// Sessions returns the number of open sessions.
func (sv *Server) Sessions() int {
	return int(sv.sessions.Load())
}

// Handler returns the HTTP handler of the server: the WebSocket endpoint
// at /ws and, if configured, the static files at /.
func (sv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", sv.ServeWS)
	if static := sv.Config().Server.Static; static != "" {
		if dir := errors.Log1(homedir.Expand(static)); dir != "" {
			mux.Handle("/", http.FileServer(http.Dir(dir)))
		}
	}
	return mux
}

// ListenAndServe listens on the configured address until ctx is done,
// then shuts down, ending all sessions.
func (sv *Server) ListenAndServe(ctx context.Context) error {
	hs := &http.Server{
		Addr:        sv.Config().Server.Addr,
		Handler:     sv.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() {
		slog.Info("serving", "addr", hs.Addr)
		errc <- hs.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return hs.Shutdown(sctx)
}

// ServeWS upgrades the request and runs a session on it until the
// client disconnects or the request context is done.
func (sv *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	cfg := sv.Config()
	cp, err := cfg.NewCompositor()
	if errors.Log(err) != nil {
		http.Error(w, "invalid configuration", http.StatusInternalServerError)
		return
	}
	conn, err := sv.Upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	ss := &session{
		id:           uuid.NewString(),
		conn:         conn,
		writeTimeout: time.Duration(cfg.Server.WriteTimeout),
	}
	cp.Renderer = ss
	cp.Sink = ss
	conn.SetReadLimit(cfg.Server.ReadLimit)

	sv.sessions.Add(1)
	defer sv.sessions.Add(-1)
	slog.Info("session started", "session", ss.id, "remote", r.RemoteAddr)
	ss.run(r.Context(), cp, time.Second/time.Duration(cfg.Server.FPS))
	slog.Info("session ended", "session", ss.id)
}

// session is one client connection. All writes happen on the
// goroutine running the compositor.
type session struct {
	id           string
	conn         *websocket.Conn
	writeTimeout time.Duration

	// cancel ends the session after a failed write.
	cancel context.CancelFunc
}

func (ss *session) run(ctx context.Context, cp *compositor.Compositor, interval time.Duration) {
	ctx, ss.cancel = context.WithCancel(ctx)
	defer ss.cancel()
	defer ss.conn.Close()

	if errors.Log(ss.write(&Output{Type: HelloOutput, Session: ss.id})) != nil {
		return
	}
	inputs := make(chan events.Event, 16)
	go ss.read(ctx, inputs)
	err := cp.Run(ctx, interval, inputs)
	if err != nil {
		// shutting down or broken: tell the client if we still can
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
		ss.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	}
}

// read decodes client messages into events until the connection fails.
// Malformed messages are logged and skipped.
func (ss *session) read(ctx context.Context, inputs chan<- events.Event) {
	defer close(inputs)
	for {
		_, b, err := ss.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("session read", "session", ss.id, "err", err)
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(b, &msg); err != nil {
			slog.Warn("malformed message", "session", ss.id, "err", err)
			continue
		}
		ev, err := msg.Event()
		if err != nil {
			slog.Warn("invalid message", "session", ss.id, "err", err)
			continue
		}
		select {
		case inputs <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (ss *session) write(out *Output) error {
	if ss.writeTimeout > 0 {
		ss.conn.SetWriteDeadline(time.Now().Add(ss.writeTimeout))
	}
	return ss.conn.WriteJSON(out)
}

// Render sends the frame to the client. A failed write ends the session.
func (ss *session) Render(fr *compositor.Frame) error {
	err := ss.write(&Output{Type: FrameOutput, Frame: fr})
	if err != nil {
		ss.cancel()
	}
	return err
}

// Navigate sends the navigation request to the client.
func (ss *session) Navigate(req pick.Request) {
	errors.Log(ss.write(&Output{Type: NavigateOutput, Target: req.Target, Label: req.Label}))
}
