/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

func (c *Coordinator) startSession(id ClientID) {
	s, ok := c.store.FindByClient(id)
	if !ok {
		c.logf("ERROR: Client %s is not in a session", id)
		return
	}

	if id != s.Host {
		c.logf("ERROR: Client %s is not authorized to start session %s", id, s.ID)
		return
	}

	if n := len(s.Players); n < c.minPlayers || n > c.maxPlayers {
		c.logf("ERROR: Session %s cannot start with %d players (need %d-%d)", s.ID, n, c.minPlayers, c.maxPlayers)
		return
	}

	letter := string(alphabet[c.rng.Intn(len(alphabet))])

	s.Started = true
	s.Words = []string{}
	s.LastLetter = letter
	s.Turn = 0

	msg := StartMessage{
		Type:        TypeStart,
		SessionID:   s.ID,
		StartLetter: letter,
	}
	if c.strictTurns {
		first := s.Players[0]
		msg.CurrentPlayer = &first
	}
	c.broadcast(s, msg)

	c.logf("WORDS: Session %s started with letter %q", s.ID, letter)
}

func (c *Coordinator) checkWord(id ClientID, msg CheckWordMessage) {
	name, _ := c.registry.Name(id)

	if !c.strictTurns && msg.CurrentPlayer.Name != name {
		c.logf("WORDS: It is %q's turn, not %q's", msg.CurrentPlayer.Name, name)
		return
	}

	s, ok := c.store.FindByClient(id)
	if !ok {
		c.logf("ERROR: Client %s is not in a session", id)
		return
	}

	if !s.Started {
		c.logf("ERROR: Session %s has not started", s.ID)
		return
	}

	if c.strictTurns && s.Players[s.Turn].ID != id {
		c.logf("WORDS: It is %q's turn in session %s, not %q's", s.Players[s.Turn].Name, s.ID, name)
		return
	}

	player, _ := s.player(id)
	word := strings.TrimSpace(msg.Word)

	switch {
	case !startsWith(word, s.LastLetter):
		c.logf("WORDS: %q does not begin with %q in session %s", word, s.LastLetter, s.ID)
		c.wrongAnswer(s, player)
	case msg.FetchData.Title != "":
		c.logf("WORDS: %q is not a recognized word", word)
		c.wrongAnswer(s, player)
	case used(s.Words, word):
		c.logf("WORDS: %q has already been used in session %s", word, s.ID)
		c.wrongAnswer(s, player)
	default:
		c.correctAnswer(s, player, word)
	}
}

func (c *Coordinator) correctAnswer(s *Session, player Player, word string) {
	s.Words = append(s.Words, word)
	s.LastLetter = lastLetter(word)

	msg := CorrectAnswerMessage{
		Type:          TypeCorrectAnswer,
		LastLetter:    s.LastLetter,
		CurrentPlayer: player,
	}
	if c.strictTurns {
		s.advanceTurn()
		next := s.Players[s.Turn]
		msg.NextPlayer = &next
	}
	c.broadcast(s, msg)

	c.logf("WORDS: %q accepted %q in session %s", player.Name, word, s.ID)
}

func (c *Coordinator) wrongAnswer(s *Session, player Player) {
	msg := WrongAnswerMessage{
		Type:          TypeWrongAnswer,
		CurrentPlayer: player,
	}
	if c.strictTurns {
		s.advanceTurn()
		next := s.Players[s.Turn]
		msg.NextPlayer = &next
	}
	c.broadcast(s, msg)
}

func startsWith(word, letter string) bool {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return false
	}

	return strings.EqualFold(string(r), letter)
}

func lastLetter(word string) string {
	r, _ := utf8.DecodeLastRuneInString(word)

	return string(unicode.ToLower(r))
}

func used(words []string, word string) bool {
	return slices.ContainsFunc(words, func(w string) bool {
		return strings.EqualFold(w, word)
	})
}
