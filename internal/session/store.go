// Package session holds the in-memory collection of chat sessions.
//
// The Store is the single writer of the collection. Every mutation replaces
// the affected session with a new value instead of editing it in place, so a
// session handed out by a read is never changed afterward.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

// ErrSessionNotFound is returned when an operation names an unknown session.
var ErrSessionNotFound = errors.New("session not found")

// Store keeps sessions newest-created-first and tracks the current selection.
type Store struct {
	mu        sync.RWMutex
	sessions  []domain.ChatSession
	currentID string

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the session id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: domain.NewSessionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// CreateSession prepends a new empty session and makes it current.
func (s *Store) CreateSession() domain.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := domain.ChatSession{
		ID:        s.newID(),
		Title:     domain.DefaultSessionTitle,
		Messages:  []domain.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := make([]domain.ChatSession, 0, len(s.sessions)+1)
	next = append(next, sess)
	next = append(next, s.sessions...)
	s.sessions = next
	s.currentID = sess.ID

	return sess.Clone()
}

// Current returns the selected session. It reports false when nothing is
// selected or the selection no longer exists.
func (s *Store) Current() (domain.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == "" {
		return domain.ChatSession{}, false
	}
	i := s.indexLocked(s.currentID)
	if i < 0 {
		return domain.ChatSession{}, false
	}
	return s.sessions[i].Clone(), true
}

// CurrentID returns the id of the selected session, or "".
func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (domain.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.ChatSession{}, false
	}
	return s.sessions[i].Clone(), true
}

// List returns every session, newest-created-first.
func (s *Store) List() []domain.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ChatSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.Clone())
	}
	return out
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// AppendMessage appends msg to the session. An unknown id is a no-op and
// reports false; other sessions are never touched.
func (s *Store) AppendMessage(sessionID string, msg domain.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(sessionID)
	if i < 0 {
		return false
	}

	old := s.sessions[i]
	msgs := make([]domain.Message, len(old.Messages), len(old.Messages)+1)
	copy(msgs, old.Messages)
	msgs = append(msgs, msg)

	updated := old
	updated.Messages = msgs
	updated.UpdatedAt = s.now()
	s.replaceLocked(i, updated)
	return true
}

// SetTitleFromFirstMessage derives the session title from text. It only
// applies while the session has no messages, so a title is set at most once.
func (s *Store) SetTitleFromFirstMessage(sessionID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(sessionID)
	if i < 0 || len(s.sessions[i].Messages) != 0 {
		return false
	}

	updated := s.sessions[i]
	updated.Title = domain.DeriveTitle(text)
	updated.UpdatedAt = s.now()
	s.replaceLocked(i, updated)
	return true
}

// DeleteSession removes a session. Deleting the current session clears the
// selection; no other session is selected in its place.
func (s *Store) DeleteSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(sessionID)
	if i < 0 {
		return false
	}

	next := make([]domain.ChatSession, 0, len(s.sessions)-1)
	next = append(next, s.sessions[:i]...)
	next = append(next, s.sessions[i+1:]...)
	s.sessions = next

	if s.currentID == sessionID {
		s.currentID = ""
	}
	return true
}

// SelectSession makes the session current without changing its UpdatedAt.
func (s *Store) SelectSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(sessionID) < 0 {
		return ErrSessionNotFound
	}
	s.currentID = sessionID
	return nil
}

// LastUserMessage returns the most recent user message of the session.
func (s *Store) LastUserMessage(sessionID string) (domain.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(sessionID)
	if i < 0 {
		return domain.Message{}, false
	}
	msgs := s.sessions[i].Messages
	for j := len(msgs) - 1; j >= 0; j-- {
		if msgs[j].Sender == domain.SenderUser {
			return msgs[j], true
		}
	}
	return domain.Message{}, false
}

func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// replaceLocked swaps in a new collection slice so that earlier List results
// keep seeing the previous session values.
func (s *Store) replaceLocked(i int, sess domain.ChatSession) {
	next := make([]domain.ChatSession, len(s.sessions))
	copy(next, s.sessions)
	next[i] = sess
	s.sessions = next
}
