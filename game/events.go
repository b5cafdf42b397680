/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "encoding/json"

// Inbound message types.
const (
	TypeJoin         = "join"
	TypeCreate       = "create-session"
	TypeJoinSession  = "join-session"
	TypeLeaveSession = "leave-session"
	TypeStartSession = "start-session"
	TypeCheckWord    = "check-word"
	TypeTimeUp       = "time-up"
)

// Outbound message types.
const (
	TypeSessionCreated = "session-created"
	TypeSessionJoined  = "session-joined"
	TypeSessionLeft    = "session-left"
	TypeStartPrivilege = "start-privilege"
	TypeStart          = "start"
	TypeCorrectAnswer  = "correct-answer"
	TypeWrongAnswer    = "wrong-answer"
)

// Envelope is decoded first to pick a handler.
type Envelope struct {
	Type string `json:"type"`
}

// JoinMessage sets the sender's display name.
type JoinMessage struct {
	Type     string `json:"type"`     // "join"
	Username string `json:"username"` // display name
}

// JoinSessionMessage asks to be added to an existing session.
type JoinSessionMessage struct {
	Type      string `json:"type"`      // "join-session"
	SessionID string `json:"sessionId"` // target session
}

// ClaimedPlayer is the client's idea of whose turn it is.
type ClaimedPlayer struct {
	Name string `json:"name"`
}

// FetchData carries the dictionary lookup result obtained by the client.
// A non-empty Title means the lookup did not find the word.
type FetchData struct {
	Title string `json:"title,omitempty"`
}

// CheckWordMessage submits a word for the current turn.
type CheckWordMessage struct {
	Type          string        `json:"type"` // "check-word"
	CurrentPlayer ClaimedPlayer `json:"currentplayer"`
	Word          string        `json:"word"`
	FetchData     FetchData     `json:"fetchdata"`
}

// TimeUpMessage is relayed to everyone else in the session.
type TimeUpMessage struct {
	Type          string          `json:"type"` // "time-up"
	CurrentPlayer json.RawMessage `json:"currentPlayer,omitempty"`
}

// SessionMessage is sent on create and join.
type SessionMessage struct {
	Type      string   `json:"type"` // "session-created" or "session-joined"
	SessionID string   `json:"sessionId"`
	Host      Player   `json:"host"`
	Players   []Player `json:"players"`
}

// SessionLeftMessage is sent to remaining players after someone leaves.
type SessionLeftMessage struct {
	Type      string   `json:"type"` // "session-left"
	SessionID string   `json:"sessionId"`
	Host      ClientID `json:"host"`
	Players   []Player `json:"players"`
}

// StartPrivilegeMessage tells a client it is now the host.
type StartPrivilegeMessage struct {
	Type string `json:"type"` // "start-privilege"
}

// StartMessage opens a round.
type StartMessage struct {
	Type          string  `json:"type"` // "start"
	SessionID     string  `json:"sessionId"`
	StartLetter   string  `json:"startLetter"`
	CurrentPlayer *Player `json:"currentPlayer,omitempty"` // strict turns only
}

// CorrectAnswerMessage announces an accepted word.
type CorrectAnswerMessage struct {
	Type          string  `json:"type"` // "correct-answer"
	LastLetter    string  `json:"lastLetter"`
	CurrentPlayer Player  `json:"currentplayer"`
	NextPlayer    *Player `json:"nextPlayer,omitempty"` // strict turns only
}

// WrongAnswerMessage announces a rejected word.
type WrongAnswerMessage struct {
	Type          string  `json:"type"` // "wrong-answer"
	CurrentPlayer Player  `json:"currentplayer"`
	NextPlayer    *Player `json:"nextPlayer,omitempty"` // strict turns only
}

// TimeUpNotice is the outbound form of a time-up.
type TimeUpNotice struct {
	Type          string          `json:"type"` // "time-up"
	CurrentPlayer json.RawMessage `json:"currentPlayer"`
}
