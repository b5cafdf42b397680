/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"encoding/json"
	"strings"
)

func (c *Coordinator) setName(id ClientID, username string) {
	name := strings.TrimSpace(username)
	if name == "" {
		c.logf("WARN: Client %s sent an empty username", id)
		return
	}

	c.registry.SetName(id, name)
	c.logf("GAMES: Client %s is now %q", id, name)
}

// namedOutsideSession returns the client's name if it has one and is not
// already playing; otherwise it logs why the request was refused.
func (c *Coordinator) namedOutsideSession(id ClientID, action string) (string, bool) {
	name, _ := c.registry.Name(id)
	if name == "" {
		c.logf("ERROR: Client %s cannot %s without a username", id, action)
		return "", false
	}

	if s, ok := c.store.FindByClient(id); ok {
		c.logf("ERROR: Client %s cannot %s while in session %s", id, action, s.ID)
		return "", false
	}

	return name, true
}

func (c *Coordinator) createSession(id ClientID) {
	name, ok := c.namedOutsideSession(id, "create a session")
	if !ok {
		return
	}

	host := Player{ID: id, Name: name}
	s := &Session{
		ID:      c.store.GenerateID(),
		Host:    id,
		Players: []Player{host},
	}
	c.store.Put(s)

	c.registry.Send(id, SessionMessage{
		Type:      TypeSessionCreated,
		SessionID: s.ID,
		Host:      host,
		Players:   s.playersCopy(),
	})

	c.logf("GAMES: Session %s created by %q", s.ID, name)
}

func (c *Coordinator) joinSession(id ClientID, sessionID string) {
	s, ok := c.store.Get(sessionID)
	if !ok {
		c.logf("ERROR: Session %q not found", sessionID)
		return
	}

	name, ok := c.namedOutsideSession(id, "join session "+sessionID)
	if !ok {
		return
	}

	s.Players = append(s.Players, Player{ID: id, Name: name})

	c.broadcast(s, SessionMessage{
		Type:      TypeSessionJoined,
		SessionID: s.ID,
		Host:      s.Players[0],
		Players:   s.playersCopy(),
	})

	c.logf("GAMES: %q joined session %s", name, s.ID)
}

func (c *Coordinator) leaveSession(id ClientID) {
	s, ok := c.store.FindByClient(id)
	if !ok {
		c.logf("ERROR: Client %s is not in a session", id)
		return
	}

	i := s.indexOf(id)
	if i < 0 {
		c.logf("ERROR: Client %s is not a player in session %s", id, s.ID)
		return
	}

	s.remove(i)

	if id != s.Host {
		c.broadcast(s, c.sessionLeft(s))
		c.logf("GAMES: Client %s left session %s", id, s.ID)
		return
	}

	if len(s.Players) == 0 {
		c.store.Remove(s.ID)
		c.logf("GAMES: Session %s deleted", s.ID)
		return
	}

	s.promote(c.rng.Intn(len(s.Players)))
	c.logf("GAMES: New host for session %s is %q", s.ID, s.Players[0].Name)

	left := c.sessionLeft(s)
	c.registry.Send(s.Host, StartPrivilegeMessage{Type: TypeStartPrivilege})
	c.registry.Send(s.Host, left)
	c.broadcast(s, left, s.Host)

	c.logf("GAMES: Client %s left session %s", id, s.ID)
}

func (c *Coordinator) sessionLeft(s *Session) SessionLeftMessage {
	return SessionLeftMessage{
		Type:      TypeSessionLeft,
		SessionID: s.ID,
		Host:      s.Host,
		Players:   s.playersCopy(),
	}
}

func (c *Coordinator) timeUp(id ClientID, currentPlayer json.RawMessage) {
	s, ok := c.store.FindByClient(id)
	if !ok {
		c.logf("ERROR: Client %s is not in a session", id)
		return
	}

	if len(currentPlayer) == 0 {
		currentPlayer = json.RawMessage("null")
	}

	c.broadcast(s, TimeUpNotice{
		Type:          TypeTimeUp,
		CurrentPlayer: currentPlayer,
	}, id)

	if c.strictTurns && s.Started && s.Players[s.Turn].ID == id {
		s.advanceTurn()
	}
}
