// Package service implements the chat turn orchestrator.
//
// Service owns the explicit state container the UI renders from: the session
// store, the in-flight flag, the turn state and the error banner. Every
// mutation publishes a fresh snapshot to the configured Notifier.
package service

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/riyan-hx/Lumid.ai/internal/adapter/answer"
	"github.com/riyan-hx/Lumid.ai/internal/domain"
	"github.com/riyan-hx/Lumid.ai/internal/fallback"
	"github.com/riyan-hx/Lumid.ai/internal/metrics"
	"github.com/riyan-hx/Lumid.ai/internal/session"
)

var (
	// ErrTurnInFlight is returned when a turn is submitted while another is outstanding.
	ErrTurnInFlight = errors.New("a turn is already in flight")
	// ErrUnknownActivity is returned for an activity action that does not exist.
	ErrUnknownActivity = errors.New("unknown activity")
)

// Notifier receives a snapshot after every state change.
type Notifier interface {
	Publish(snapshot domain.StateSnapshot)
}

type Service struct {
	store     *session.Store
	answers   answer.AnswerClient
	responder *fallback.Responder
	notifier  Notifier
	metrics   *metrics.Metrics
	log       *slog.Logger

	mu          sync.Mutex
	inFlight    bool
	turnState   domain.TurnState
	turnErr     *domain.TurnError
	lastOutcome domain.TurnOutcome
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the snapshot subscriber.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

func New(store *session.Store, answers answer.AnswerClient, responder *fallback.Responder, opts ...Option) *Service {
	s := &Service{
		store:     store,
		answers:   answers,
		responder: responder,
		log:       slog.Default(),
		turnState: domain.TurnStateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current read-only view of the chat state.
func (s *Service) Snapshot() domain.StateSnapshot {
	s.mu.Lock()
	snap := domain.StateSnapshot{
		InFlight:    s.inFlight,
		TurnState:   s.turnState,
		LastOutcome: s.lastOutcome,
	}
	if s.turnErr != nil {
		e := *s.turnErr
		snap.Error = &e
	}
	s.mu.Unlock()

	currentID := s.store.CurrentID()
	snap.Sessions = s.store.List()
	for i := range snap.Sessions {
		if snap.Sessions[i].ID == currentID {
			cur := snap.Sessions[i].Clone()
			snap.Current = &cur
			snap.CurrentSessionID = currentID
			break
		}
	}
	return snap
}

func (s *Service) publish() {
	s.metrics.SetSessions(s.store.Len())

	s.mu.Lock()
	n := s.notifier
	s.mu.Unlock()
	if n == nil {
		return
	}
	n.Publish(s.Snapshot())
}
