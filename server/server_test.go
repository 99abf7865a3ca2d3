// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/knotfly/knotfly/base/websocket"
	"github.com/knotfly/knotfly/config"
	"github.com/knotfly/knotfly/events"
	"github.com/knotfly/knotfly/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageEvent(t *testing.T) {
	ev, err := (&Message{Type: "scroll", Offset: 250, ScrollHeight: 1500, ViewportHeight: 500}).Event()
	require.NoError(t, err)
	assert.Equal(t, events.NewScroll(250, 1500, 500), ev)

	ev, err = (&Message{Type: "pointer", Kind: "click", X: 3, Y: 4}).Event()
	require.NoError(t, err)
	assert.Equal(t, events.NewClick(3, 4), ev)

	ev, err = (&Message{Type: "pointer", Kind: "move", X: 3, Y: 4}).Event()
	require.NoError(t, err)
	assert.Equal(t, events.PointerMove, ev.Type())

	ev, err = (&Message{Type: "resize", Width: 800, Height: 600}).Event()
	require.NoError(t, err)
	assert.Equal(t, events.NewResize(800, 600), ev)

	_, err = (&Message{Type: "pointer", Kind: "scroll"}).Event()
	assert.Error(t, err)
	_, err = (&Message{Type: "pointer", Kind: "drag"}).Event()
	assert.Error(t, err)
	_, err = (&Message{Type: "zoom"}).Event()
	assert.Error(t, err)
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *httptest.Server) {
	t.Helper()
	sv := New(func() *config.Config { return cfg })
	ts := httptest.NewServer(sv.Handler())
	t.Cleanup(ts.Close)
	return sv, ts
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestSession(t *testing.T) {
	cfg := config.Default()
	cfg.Server.FPS = 100
	sv, ts := newTestServer(t, cfg)

	client, err := websocket.Connect(wsURL(ts))
	require.NoError(t, err)
	var frames atomic.Int64
	outs := make(chan Output, 16)
	client.OnMessage(func(typ websocket.MessageTypes, msg []byte) {
		var out Output
		if json.Unmarshal(msg, &out) != nil {
			return
		}
		if out.Type == FrameOutput {
			frames.Add(1)
			return
		}
		outs <- out
	})

	hello := <-outs
	assert.Equal(t, HelloOutput, hello.Type)
	_, err = uuid.Parse(hello.Session)
	assert.NoError(t, err)
	assert.Equal(t, 1, sv.Sessions())

	// bad messages are skipped
	require.NoError(t, client.Send(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, client.SendJSON(&Message{Type: "zoom"}))

	require.NoError(t, client.SendJSON(&Message{Type: "resize", Width: 800, Height: 600}))
	cam := &xyz.Camera{}
	cam.Defaults()
	cam.SetAspect(800, 600)
	ndc, _, ok := cam.Project(cfg.NewCurve().Sample(0.7))
	require.True(t, ok)
	click := &Message{Type: "pointer", Kind: "click", X: (ndc.X + 1) / 2 * 800, Y: (1 - ndc.Y) / 2 * 600}
	require.NoError(t, client.SendJSON(click))

	select {
	case out := <-outs:
		assert.Equal(t, NavigateOutput, out.Type)
		assert.Equal(t, "projects/", out.Target)
		assert.Equal(t, "PROJECTS", out.Label)
	case <-time.After(5 * time.Second):
		t.Fatal("no navigate message")
	}
	assert.Eventually(t, func() bool { return frames.Load() > 0 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, client.Close())
	<-client.Done()
	assert.Eventually(t, func() bool { return sv.Sessions() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<canvas></canvas>"), 0666))
	cfg := config.Default()
	cfg.Server.Static = dir
	_, ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<canvas></canvas>", string(b))
}

func TestStaticUnexpandable(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Static = "~nobody-here/site"
	_, ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Hotspots.Sections = append(cfg.Hotspots.Sections, cfg.Hotspots.Sections[0])
	_, ts := newTestServer(t, cfg)
	_, err := websocket.Connect(wsURL(ts))
	assert.Error(t, err)
}

func TestListenAndServe(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	sv := New(func() *config.Config { return cfg })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- sv.ListenAndServe(ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
