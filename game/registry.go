/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"encoding/json"
	"strconv"
)

// ClientID identifies a connection for its whole lifetime.
type ClientID int

func (id ClientID) String() string {
	return strconv.Itoa(int(id))
}

// Conn is the outbound half of a transport connection. Send must not block.
type Conn interface {
	Send(data []byte) error
}

type client struct {
	conn Conn
	name string
}

// Registry tracks live connections and their display names.
// It is not safe for concurrent use; the Coordinator serializes access.
type Registry struct {
	next    ClientID
	clients map[ClientID]*client
	logf    func(format string, args ...any)
}

func newRegistry(logf func(format string, args ...any)) *Registry {
	return &Registry{
		clients: make(map[ClientID]*client),
		logf:    logf,
	}
}

// Register stores conn under a fresh identifier.
func (r *Registry) Register(conn Conn) ClientID {
	id := r.next
	r.next++
	r.clients[id] = &client{conn: conn}

	return id
}

// SetName sets or overwrites the display name. Unknown ids are ignored.
func (r *Registry) SetName(id ClientID, name string) {
	if c, ok := r.clients[id]; ok {
		c.name = name
	}
}

// Name returns the display name, or "" if unset.
func (r *Registry) Name(id ClientID) (string, bool) {
	c, ok := r.clients[id]
	if !ok {
		return "", false
	}

	return c.name, true
}

func (r *Registry) Unregister(id ClientID) {
	delete(r.clients, id)
}

func (r *Registry) Len() int {
	return len(r.clients)
}

// Send encodes msg and hands it to the client's connection. Sends to
// vanished clients and failed writes are dropped.
func (r *Registry) Send(id ClientID, msg any) {
	c, ok := r.clients[id]
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		r.logf("ERROR: Encoding message for client %s: %v", id, err)
		return
	}

	if err := c.conn.Send(data); err != nil {
		r.logf("WARN: Dropped message to client %s: %v", id, err)
	}
}
