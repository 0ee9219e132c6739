// Package domain defines the core domain models for the chat client.
package domain

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// TurnState is the orchestrator's position in the per-turn state machine.
type TurnState string

const (
	TurnStateIdle       TurnState = "idle"
	TurnStateSending    TurnState = "sending"
	TurnStateSucceeded  TurnState = "succeeded"
	TurnStateFallenBack TurnState = "fallen_back"
)

// TurnOutcome records where the assistant reply of a turn came from.
type TurnOutcome string

const (
	TurnOutcomeSucceeded  TurnOutcome = "succeeded"
	TurnOutcomeFallenBack TurnOutcome = "fallen_back"
)
