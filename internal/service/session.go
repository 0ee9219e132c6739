package service

import (
	"fmt"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
	"github.com/riyan-hx/Lumid.ai/internal/session"
)

// CreateSession starts a new conversation and selects it.
func (s *Service) CreateSession() domain.ChatSession {
	sess := s.store.CreateSession()
	s.log.Info("session created", "session_id", sess.ID)
	s.publish()
	return sess
}

// SelectSession makes an existing session current.
func (s *Service) SelectSession(sessionID string) error {
	if err := s.store.SelectSession(sessionID); err != nil {
		return fmt.Errorf("failed to select session %q: %w", sessionID, err)
	}
	s.publish()
	return nil
}

// DeleteSession removes a session. Deleting the current one leaves nothing
// selected; the next turn creates a fresh session.
func (s *Service) DeleteSession(sessionID string) error {
	if !s.store.DeleteSession(sessionID) {
		return fmt.Errorf("failed to delete session %q: %w", sessionID, session.ErrSessionNotFound)
	}
	s.log.Info("session deleted", "session_id", sessionID)
	s.publish()
	return nil
}

// Sessions lists every session newest-created-first.
func (s *Service) Sessions() []domain.ChatSession {
	return s.store.List()
}

// Session returns one session by id.
func (s *Service) Session(sessionID string) (domain.ChatSession, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return domain.ChatSession{}, fmt.Errorf("failed to get session %q: %w", sessionID, session.ErrSessionNotFound)
	}
	return sess, nil
}

// CurrentSession returns the selected session, if any.
func (s *Service) CurrentSession() (domain.ChatSession, bool) {
	return s.store.Current()
}

// DismissError clears the error banner.
func (s *Service) DismissError() {
	s.mu.Lock()
	changed := s.turnErr != nil
	s.turnErr = nil
	s.mu.Unlock()

	if changed {
		s.publish()
	}
}
