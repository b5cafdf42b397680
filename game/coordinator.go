/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package game implements the word-chain lobby and round logic.
//
// Every inbound event is handled under a single lock, from decoding through
// the last outbound send, so session invariants hold between events:
//   - a client is in at most one session
//   - a session's host is always its first player
//   - a session is deleted as soon as its last player leaves
//   - accepted words chain letter to letter and never repeat
package game

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultMinPlayers = 2
	DefaultMaxPlayers = 5
)

// Options configures a Coordinator. Zero values select defaults.
type Options struct {
	MinPlayers int
	MaxPlayers int

	// StrictTurns makes the server track whose turn it is instead of
	// trusting the turn claimed by the submitting client.
	StrictTurns bool

	Rand *rand.Rand
	Logf func(format string, args ...any)
}

// Coordinator owns all client and session state.
type Coordinator struct {
	mu sync.Mutex

	registry *Registry
	store    *Store
	rng      *rand.Rand
	logf     func(format string, args ...any)

	minPlayers  int
	maxPlayers  int
	strictTurns bool
}

func NewCoordinator(opts Options) *Coordinator {
	if opts.MinPlayers <= 0 {
		opts.MinPlayers = DefaultMinPlayers
	}
	if opts.MaxPlayers <= 0 {
		opts.MaxPlayers = DefaultMaxPlayers
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}

	return &Coordinator{
		registry:    newRegistry(opts.Logf),
		store:       newStore(opts.Rand),
		rng:         opts.Rand,
		logf:        opts.Logf,
		minPlayers:  opts.MinPlayers,
		maxPlayers:  opts.MaxPlayers,
		strictTurns: opts.StrictTurns,
	}
}

// Connect registers a new connection and returns its id.
func (c *Coordinator) Connect(conn Conn) ClientID {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.registry.Register(conn)
	c.logf("GAMES: Client %s connected", id)

	return id
}

// Disconnect removes the client from its session, if any, and forgets it.
func (c *Coordinator) Disconnect(id ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logf("GAMES: Client %s disconnected", id)

	if _, ok := c.store.FindByClient(id); ok {
		c.leaveSession(id)
	}
	c.registry.Unregister(id)
}

// Handle decodes one inbound message from id and applies it.
func (c *Coordinator) Handle(id ClientID, raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.registry.Name(id); !ok {
		c.logf("WARN: Message from unknown client %s", id)
		return
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logf("WARN: Malformed message from client %s: %v", id, err)
		return
	}

	switch env.Type {
	case TypeJoin:
		var msg JoinMessage
		if c.decode(id, raw, &msg) {
			c.setName(id, msg.Username)
		}
	case TypeCreate:
		c.createSession(id)
	case TypeJoinSession:
		var msg JoinSessionMessage
		if c.decode(id, raw, &msg) {
			c.joinSession(id, msg.SessionID)
		}
	case TypeLeaveSession:
		c.leaveSession(id)
	case TypeStartSession:
		c.startSession(id)
	case TypeCheckWord:
		var msg CheckWordMessage
		if c.decode(id, raw, &msg) {
			c.checkWord(id, msg)
		}
	case TypeTimeUp:
		var msg TimeUpMessage
		if c.decode(id, raw, &msg) {
			c.timeUp(id, msg.CurrentPlayer)
		}
	default:
		c.logf("WARN: Unknown message type %q from client %s", env.Type, id)
	}
}

func (c *Coordinator) decode(id ClientID, raw []byte, v any) bool {
	if err := json.Unmarshal(raw, v); err != nil {
		c.logf("WARN: Malformed message from client %s: %v", id, err)
		return false
	}

	return true
}

// Session returns a snapshot of the session with the given id.
func (c *Coordinator) Session(sessionID string) (SessionView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.store.Get(sessionID)
	if !ok {
		return SessionView{}, false
	}

	return s.view(), true
}

// Stats reports the number of connected clients and live sessions.
func (c *Coordinator) Stats() (clients, sessions int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.registry.Len(), c.store.Len()
}
