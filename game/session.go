/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "slices"

// Player is a client's membership record inside a session.
type Player struct {
	ID         ClientID `json:"id"`
	Name       string   `json:"name"`
	Score      int      `json:"score"`
	Eliminated bool     `json:"eliminated"`
}

// Session is one game instance. Players[0] is always the host.
type Session struct {
	ID      string
	Host    ClientID
	Players []Player

	// Round state, set by start-session.
	Started    bool
	Words      []string
	LastLetter string

	// Index into Players of whose turn it is; only consulted with strict turns.
	Turn int
}

func (s *Session) indexOf(id ClientID) int {
	return slices.IndexFunc(s.Players, func(p Player) bool {
		return p.ID == id
	})
}

func (s *Session) contains(id ClientID) bool {
	return s.indexOf(id) >= 0
}

func (s *Session) player(id ClientID) (Player, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Player{}, false
	}

	return s.Players[i], true
}

// remove drops the player at index i and keeps Turn pointing at the same
// player, or at whoever now occupies the removed slot.
func (s *Session) remove(i int) {
	s.Players = slices.Delete(s.Players, i, i+1)

	if i < s.Turn {
		s.Turn--
	}
	if len(s.Players) > 0 {
		s.Turn %= len(s.Players)
	} else {
		s.Turn = 0
	}
}

// promote moves the player at index i to the front, preserving the relative
// order of everyone else, and makes them host.
func (s *Session) promote(i int) {
	if i > 0 {
		p := s.Players[i]
		copy(s.Players[1:i+1], s.Players[:i])
		s.Players[0] = p

		switch {
		case s.Turn == i:
			s.Turn = 0
		case s.Turn < i:
			s.Turn++
		}
	}

	s.Host = s.Players[0].ID
}

func (s *Session) advanceTurn() {
	if len(s.Players) > 0 {
		s.Turn = (s.Turn + 1) % len(s.Players)
	}
}

func (s *Session) playersCopy() []Player {
	return slices.Clone(s.Players)
}

// SessionView is a read-only snapshot of a session.
type SessionView struct {
	ID         string   `json:"sessionId"`
	Host       ClientID `json:"host"`
	Players    []Player `json:"players"`
	Started    bool     `json:"started"`
	LastLetter string   `json:"lastLetter,omitempty"`
	Words      []string `json:"words"`
}

func (s *Session) view() SessionView {
	words := slices.Clone(s.Words)
	if words == nil {
		words = []string{}
	}

	return SessionView{
		ID:         s.ID,
		Host:       s.Host,
		Players:    s.playersCopy(),
		Started:    s.Started,
		LastLetter: s.LastLetter,
		Words:      words,
	}
}
