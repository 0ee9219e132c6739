package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

// SubmitTurn sends text as a user message and appends the assistant reply,
// falling back to the local responder when the remote call fails.
//
// Blank text is a no-op and returns (nil, nil). Only one turn may be in
// flight; a second call fails with ErrTurnInFlight.
func (s *Service) SubmitTurn(ctx context.Context, text string, isRetry bool) (*domain.TurnResult, error) {
	question := strings.TrimSpace(text)
	if question == "" {
		return nil, nil
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	s.inFlight = true
	s.turnState = domain.TurnStateSending
	s.turnErr = nil
	s.mu.Unlock()
	defer s.endTurn()

	sessionID, userMsg := s.appendUserMessage(text)
	s.publish()

	start := time.Now()
	reply, err := s.answers.FetchAnswer(ctx, question)
	s.metrics.ObserveAnswer(time.Since(start), err)

	result := &domain.TurnResult{
		SessionID:   sessionID,
		UserMessage: userMsg,
		Retry:       isRetry,
		Outcome:     domain.TurnOutcomeSucceeded,
	}
	if err != nil {
		result.Outcome = domain.TurnOutcomeFallenBack
		result.Error = &domain.TurnError{Message: failureBanner(err)}
		reply = s.responder.Respond(text)
		s.log.Warn("remote answer failed, using fallback",
			"session_id", sessionID,
			"topic", s.responder.Topic(text),
			"error", err,
		)
	}

	result.AssistantMessage = s.newMessage(reply, domain.SenderAssistant)
	if !s.store.AppendMessage(sessionID, result.AssistantMessage) {
		result.Orphaned = true
		s.log.Warn("session deleted during turn, reply dropped", "session_id", sessionID)
	}

	s.mu.Lock()
	if result.Outcome == domain.TurnOutcomeSucceeded {
		s.turnState = domain.TurnStateSucceeded
		s.turnErr = nil
	} else {
		s.turnState = domain.TurnStateFallenBack
		e := *result.Error
		s.turnErr = &e
	}
	s.lastOutcome = result.Outcome
	s.mu.Unlock()

	s.metrics.ObserveTurn(string(result.Outcome), isRetry)
	s.log.Info("turn completed",
		"session_id", sessionID,
		"outcome", result.Outcome,
		"retry", isRetry,
		"duration", time.Since(start),
	)
	return result, nil
}

// endTurn clears the in-flight flag and returns the turn to idle, even when
// the answer client panicked.
func (s *Service) endTurn() {
	s.mu.Lock()
	s.inFlight = false
	s.turnState = domain.TurnStateIdle
	s.mu.Unlock()
	s.publish()
}

// RetryLastTurn re-sends the most recent user message of the current session
// as a new turn. It is a no-op when there is nothing to retry.
func (s *Service) RetryLastTurn(ctx context.Context) (*domain.TurnResult, error) {
	cur, ok := s.store.Current()
	if !ok {
		return nil, nil
	}
	last, ok := s.store.LastUserMessage(cur.ID)
	if !ok {
		return nil, nil
	}
	return s.SubmitTurn(ctx, last.Content, true)
}

// Activities lists the guided activities.
func (s *Service) Activities() []domain.Activity {
	return domain.Activities()
}

// SubmitActivity sends the prompt of the named activity as a turn.
func (s *Service) SubmitActivity(ctx context.Context, action string) (*domain.TurnResult, error) {
	activity, ok := domain.FindActivity(action)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActivity, action)
	}
	return s.SubmitTurn(ctx, activity.Prompt, false)
}

// appendUserMessage ensures a current session exists, titles it on its first
// message and appends the user message.
func (s *Service) appendUserMessage(text string) (string, domain.Message) {
	msg := s.newMessage(text, domain.SenderUser)

	cur, ok := s.store.Current()
	if !ok {
		cur = s.store.CreateSession()
		s.log.Info("session created", "session_id", cur.ID)
	}
	s.store.SetTitleFromFirstMessage(cur.ID, text)
	if s.store.AppendMessage(cur.ID, msg) {
		return cur.ID, msg
	}

	// Deleted between the lookup and the append.
	cur = s.store.CreateSession()
	s.log.Info("session created", "session_id", cur.ID)
	s.store.SetTitleFromFirstMessage(cur.ID, text)
	s.store.AppendMessage(cur.ID, msg)
	return cur.ID, msg
}

func (s *Service) newMessage(content string, sender domain.Sender) domain.Message {
	now := s.store.Now()
	return domain.Message{
		ID:        domain.NewMessageID(now),
		Content:   content,
		Sender:    sender,
		Timestamp: now,
	}
}
