// Package protocol defines the WebSocket messages exchanged between the chat
// server and its subscribers.
package protocol

import (
	"time"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

// Message types from client to server
const (
	TypeSend          = "send"
	TypeRetry         = "retry"
	TypeNewSession    = "new_session"
	TypeSelectSession = "select_session"
	TypeDeleteSession = "delete_session"
	TypeDismissError  = "dismiss_error"
	TypeActivity      = "activity"
)

// Message types from server to client
const (
	TypeState = "state"
	TypeError = "error"
)

// BaseMessage contains common fields for all messages.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	RequestID string `json:"request_id,omitempty"`
}

// SendMessage submits text as a new turn.
type SendMessage struct {
	BaseMessage
	Text string `json:"text"`
}

// SessionMessage names a session for select_session and delete_session.
type SessionMessage struct {
	BaseMessage
	SessionID string `json:"session_id"`
}

// ActivityMessage starts a guided activity.
type ActivityMessage struct {
	BaseMessage
	Action string `json:"action"`
}

// StateMessage carries a full snapshot of the chat state.
type StateMessage struct {
	BaseMessage
	State domain.StateSnapshot `json:"state"`
}

// ErrorMessage is sent when a command is rejected.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrorCodeInvalidMessage  = "invalid_message"
	ErrorCodeTurnInFlight    = "turn_in_flight"
	ErrorCodeSessionNotFound = "session_not_found"
	ErrorCodeUnknownActivity = "unknown_activity"
	ErrorCodeInternalError   = "internal_error"
)

// NewState wraps a snapshot in a state message.
func NewState(snap domain.StateSnapshot) StateMessage {
	return StateMessage{
		BaseMessage: BaseMessage{Type: TypeState, Ts: time.Now().UnixMilli()},
		State:       snap,
	}
}

// NewError builds an error message answering the given request.
func NewError(requestID, code, message string) ErrorMessage {
	return ErrorMessage{
		BaseMessage: BaseMessage{Type: TypeError, Ts: time.Now().UnixMilli(), RequestID: requestID},
		Code:        code,
		Message:     message,
	}
}
