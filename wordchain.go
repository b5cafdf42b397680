/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Wordchain transport
//
// Clients connect over a single WebSocket and exchange JSON messages with the
// game coordinator. Each connection gets:
// - a reader loop that forwards every frame to the coordinator
// - a writer goroutine draining a bounded queue, so a slow client never
//   holds up the coordinator (overflowing messages are dropped)
// - ping/pong keepalive, dropping connections idle past --idle-timeout
//
// Sessions can also be inspected over HTTP and shared via QR code.

package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/Seednode/wordchain/game"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const (
	maxMessageSize = 4096
	qrSize         = 320
)

var (
	errConnClosed = errors.New("connection closed")
	errQueueFull  = errors.New("send queue full")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// connection implements game.Conn on top of a WebSocket.
type connection struct {
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newConnection(ws *websocket.Conn, buffer int) *connection {
	return &connection{
		ws:   ws,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// Send queues data without blocking.
func (c *connection) Send(data []byte) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errQueueFull
	}
}

func (c *connection) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

func (c *connection) readPump(cfg *Config, coord *game.Coordinator, id game.ClientID) {
	defer func() {
		coord.Disconnect(id)
		c.close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(cfg.idleTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(cfg.idleTimeout))
	})

	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logf(cfg, "WARN: Client %s read error: %v", id, err)
			}
			return
		}

		if kind != websocket.TextMessage {
			continue
		}

		coord.Handle(id, data)
	}
}

func (c *connection) writePump(cfg *Config) {
	ticker := time.NewTicker(cfg.idleTimeout * 9 / 10)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return

		case data := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(timeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(timeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func serveWebSocket(cfg *Config, coord *game.Coordinator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: Upgrade from %s failed: %v", realIP(r), err)
			return
		}

		conn := newConnection(ws, cfg.sendBuffer)
		id := coord.Connect(conn)

		logf(cfg, "SERVE: Client %s connected from %s", id, realIP(r))

		go conn.writePump(cfg)
		conn.readPump(cfg, coord, id)
	}
}

func serveSession(cfg *Config, coord *game.Coordinator, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		securityHeaders(cfg, w)

		view, ok := coord.Session(ps.ByName("sessionid"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		if err := json.NewEncoder(w).Encode(view); err != nil {
			errs <- err
		}
	}
}

func serveStats(cfg *Config, coord *game.Coordinator, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		securityHeaders(cfg, w)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		clients, sessions := coord.Stats()

		err := json.NewEncoder(w).Encode(struct {
			Clients  int `json:"clients"`
			Sessions int `json:"sessions"`
		}{clients, sessions})
		if err != nil {
			errs <- err
		}
	}
}

// joinURL is the address a player opens to join sessionID.
func joinURL(cfg *Config, r *http.Request, sessionID string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     cfg.prefix + "/",
		RawQuery: url.Values{"session": {sessionID}}.Encode(),
	}

	return u.String()
}

// serveQR renders a PNG QR code pointing at the session's join URL.
func serveQR(cfg *Config, coord *game.Coordinator, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sessionID := ps.ByName("sessionid")
		if _, ok := coord.Session(sessionID); !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		png, err := qrcode.Encode(joinURL(cfg, r, sessionID), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)

		if _, err := w.Write(png); err != nil {
			errs <- err
		}
	}
}

// registerWordChain sets up routes so that:
//   - $prefix/ws                        → WebSocket game protocol
//   - $prefix/api/stats                 → connected clients and live sessions
//   - $prefix/api/sessions/:sessionid   → JSON snapshot of a session
//   - $prefix/session/:sessionid/qr     → PNG QR code for joining a session
func registerWordChain(cfg *Config, mux *httprouter.Router, errs chan<- error) *game.Coordinator {
	coord := game.NewCoordinator(game.Options{
		MinPlayers:  cfg.minPlayers,
		MaxPlayers:  cfg.maxPlayers,
		StrictTurns: cfg.strictTurns,
		Logf:        gameLogger(cfg),
	})

	mux.GET(cfg.prefix+"/ws", serveWebSocket(cfg, coord))
	mux.GET(cfg.prefix+"/api/stats", serveStats(cfg, coord, errs))
	mux.GET(cfg.prefix+"/api/sessions/:sessionid", serveSession(cfg, coord, errs))
	mux.GET(cfg.prefix+"/session/:sessionid/qr", serveQR(cfg, coord, errs))

	return coord
}
