/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Seednode/wordchain/game"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

func testConfig() *Config {
	return &Config{
		bind:        "127.0.0.1",
		idleTimeout: time.Minute,
		maxPlayers:  game.DefaultMaxPlayers,
		minPlayers:  game.DefaultMinPlayers,
		port:        8080,
		sendBuffer:  16,
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	errs := make(chan error, 64)
	srv := httptest.NewServer(newRouter(testConfig(), errs))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func write(t *testing.T, ws *websocket.Conn, msg any) {
	t.Helper()

	if err := ws.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// read waits for the next frame and decodes it into v, returning its type.
func read(t *testing.T, ws *websocket.Conn, v any) string {
	t.Helper()

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var env game.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if v != nil {
		if err := json.Unmarshal(data, v); err != nil {
			t.Fatalf("decode %s: %v", env.Type, err)
		}
	}
	return env.Type
}

func TestWebSocket_SessionFlow(t *testing.T) {
	srv := newTestServer(t)

	alice := dial(t, srv)
	bob := dial(t, srv)

	write(t, alice, game.JoinMessage{Type: game.TypeJoin, Username: "alice"})
	write(t, alice, game.Envelope{Type: game.TypeCreate})

	var created game.SessionMessage
	if typ := read(t, alice, &created); typ != game.TypeSessionCreated {
		t.Fatalf("alice: got %q, want %q", typ, game.TypeSessionCreated)
	}

	write(t, bob, game.JoinMessage{Type: game.TypeJoin, Username: "bob"})
	write(t, bob, game.JoinSessionMessage{Type: game.TypeJoinSession, SessionID: created.SessionID})

	for name, ws := range map[string]*websocket.Conn{"alice": alice, "bob": bob} {
		var joined game.SessionMessage
		if typ := read(t, ws, &joined); typ != game.TypeSessionJoined {
			t.Fatalf("%s: got %q, want %q", name, typ, game.TypeSessionJoined)
		}
		names := []string{joined.Players[0].Name, joined.Players[1].Name}
		if diff := cmp.Diff([]string{"alice", "bob"}, names); diff != "" {
			t.Fatalf("%s: players (-want +got):\n%s", name, diff)
		}
	}

	resp, err := http.Get(srv.URL + "/api/sessions/" + created.SessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	defer resp.Body.Close()

	var view game.SessionView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if view.ID != created.SessionID || len(view.Players) != 2 {
		t.Fatalf("unexpected session view %+v", view)
	}

	// Dropping the host's socket hands the session to bob.
	_ = alice.Close()

	if typ := read(t, bob, nil); typ != game.TypeStartPrivilege {
		t.Fatalf("bob: got %q, want %q", typ, game.TypeStartPrivilege)
	}

	var left game.SessionLeftMessage
	if typ := read(t, bob, &left); typ != game.TypeSessionLeft {
		t.Fatalf("bob: got %q, want %q", typ, game.TypeSessionLeft)
	}
	if len(left.Players) != 1 || left.Players[0].Name != "bob" || left.Host != left.Players[0].ID {
		t.Fatalf("unexpected session-left %+v", left)
	}
}

func TestWebSocket_IgnoresUnknownTypes(t *testing.T) {
	srv := newTestServer(t)
	ws := dial(t, srv)

	write(t, ws, map[string]string{"type": "dance"})
	if err := ws.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
		t.Fatalf("write: %v", err)
	}
	write(t, ws, game.JoinMessage{Type: game.TypeJoin, Username: "alice"})
	write(t, ws, game.Envelope{Type: game.TypeCreate})

	if typ := read(t, ws, nil); typ != game.TypeSessionCreated {
		t.Fatalf("got %q, want %q", typ, game.TypeSessionCreated)
	}
}

func TestHTTP_Routes(t *testing.T) {
	srv := newTestServer(t)

	ws := dial(t, srv)
	write(t, ws, game.JoinMessage{Type: game.TypeJoin, Username: "alice"})
	write(t, ws, game.Envelope{Type: game.TypeCreate})

	var created game.SessionMessage
	read(t, ws, &created)

	cases := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/healthz", http.StatusOK, "text/plain; charset=utf-8"},
		{"/version", http.StatusOK, "text/plain; charset=utf-8"},
		{"/robots.txt", http.StatusOK, "text/plain; charset=utf-8"},
		{"/", http.StatusOK, "text/html; charset=utf-8"},
		{"/api/stats", http.StatusOK, "application/json"},
		{"/api/sessions/" + created.SessionID, http.StatusOK, "application/json"},
		{"/api/sessions/missing", http.StatusNotFound, ""},
		{"/session/" + created.SessionID + "/qr", http.StatusOK, "image/png"},
		{"/session/missing/qr", http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tc.path)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.status {
				t.Fatalf("status: got %d, want %d", resp.StatusCode, tc.status)
			}
			if tc.contentType != "" && resp.Header.Get("Content-Type") != tc.contentType {
				t.Fatalf("content type: got %q, want %q", resp.Header.Get("Content-Type"), tc.contentType)
			}
		})
	}
}

func TestJoinURL(t *testing.T) {
	cfg := testConfig()
	cfg.prefix = "/games"

	r := httptest.NewRequest(http.MethodGet, "http://example.com/games/session/abc123/qr", nil)
	r.Header.Set("X-Forwarded-Proto", "https")

	if got, want := joinURL(cfg, r, "abc123"), "https://example.com/games/?session=abc123"; got != want {
		t.Fatalf("joinURL: got %q, want %q", got, want)
	}
}

func TestConnection_SendNeverBlocks(t *testing.T) {
	c := &connection{
		send: make(chan []byte, 1),
		done: make(chan struct{}),
	}

	if err := c.Send([]byte("a")); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := c.Send([]byte("b")); err != errQueueFull {
		t.Fatalf("second send: got %v, want %v", err, errQueueFull)
	}

	close(c.done)
	if err := c.Send([]byte("c")); err != errConnClosed {
		t.Fatalf("send after close: got %v, want %v", err, errConnClosed)
	}

	if got := <-c.send; !bytes.Equal(got, []byte("a")) {
		t.Fatalf("queued frame: got %q", got)
	}
}
