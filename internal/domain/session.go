package domain

import (
	"time"
	"unicode/utf8"
)

// DefaultSessionTitle is the placeholder title of a session without messages.
const DefaultSessionTitle = "New conversation"

// TitleMaxChars is the number of characters kept when deriving a title.
const TitleMaxChars = 30

// Message is a single chat message. Messages are never edited after creation.
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
	Sender    Sender    `json:"sender" yaml:"sender"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// ChatSession is a named conversation thread.
type ChatSession struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Messages  []Message `json:"messages" yaml:"messages"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a copy whose message slice does not alias the receiver's.
func (s ChatSession) Clone() ChatSession {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}

// DeriveTitle builds a session title from the first user message.
// Length is counted in runes so multi-byte text is never cut mid-character.
func DeriveTitle(text string) string {
	if utf8.RuneCountInString(text) <= TitleMaxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:TitleMaxChars]) + "..."
}

// TurnError is the transient banner shown after a failed remote call.
type TurnError struct {
	Message string `json:"message"`
}

// TurnResult describes one completed turn.
type TurnResult struct {
	SessionID        string      `json:"session_id"`
	UserMessage      Message     `json:"user_message"`
	AssistantMessage Message     `json:"assistant_message"`
	Outcome          TurnOutcome `json:"outcome"`
	Error            *TurnError  `json:"error,omitempty"`
	Retry            bool        `json:"retry,omitempty"`
	// Orphaned is set when the session was deleted while the remote call was
	// outstanding; the assistant message was built but not stored.
	Orphaned bool `json:"orphaned,omitempty"`
}

// StateSnapshot is the read-only view of the chat state handed to subscribers.
type StateSnapshot struct {
	Sessions         []ChatSession `json:"sessions"`
	CurrentSessionID string        `json:"current_session_id,omitempty"`
	Current          *ChatSession  `json:"current,omitempty"`
	InFlight         bool          `json:"in_flight"`
	TurnState        TurnState     `json:"turn_state"`
	// LastOutcome is the outcome of the most recent completed turn, empty
	// before the first one.
	LastOutcome      TurnOutcome   `json:"last_outcome,omitempty"`
	Error            *TurnError    `json:"error,omitempty"`
}
