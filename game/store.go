/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "math/rand"

const (
	sessionIDLetters = "abcdefghijklmnopqrstuvwxyz0123456789"
	sessionIDLength  = 6
)

// Store holds the live sessions. A client appears in at most one of them.
// It is not safe for concurrent use; the Coordinator serializes access.
type Store struct {
	sessions map[string]*Session
	newID    func() string
}

func newStore(rng *rand.Rand) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		newID: func() string {
			out := make([]byte, sessionIDLength)
			for i := range out {
				out[i] = sessionIDLetters[rng.Intn(len(sessionIDLetters))]
			}
			return string(out)
		},
	}
}

// GenerateID returns a random identifier not used by any live session.
func (s *Store) GenerateID() string {
	for {
		id := s.newID()
		if _, exists := s.sessions[id]; !exists {
			return id
		}
	}
}

// FindByClient returns the session containing the client, if any.
func (s *Store) FindByClient(id ClientID) (*Session, bool) {
	for _, session := range s.sessions {
		if session.contains(id) {
			return session, true
		}
	}

	return nil, false
}

func (s *Store) Get(sessionID string) (*Session, bool) {
	session, ok := s.sessions[sessionID]

	return session, ok
}

func (s *Store) Put(session *Session) {
	s.sessions[session.ID] = session
}

func (s *Store) Remove(sessionID string) {
	delete(s.sessions, sessionID)
}

func (s *Store) Len() int {
	return len(s.sessions)
}
