package answer

import (
	"errors"
	"fmt"
	"net"
)

// ErrEmptyQuestion is returned when the trimmed question is empty.
var ErrEmptyQuestion = errors.New("question is required")

// ErrorKind classifies why a remote answer could not be obtained.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindStatus    ErrorKind = "status"
	KindPayload   ErrorKind = "payload"
)

// RemoteAnswerError is returned for every failed FetchAnswer call.
type RemoteAnswerError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Details    string
	Err        error
}

func (e *RemoteAnswerError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RemoteAnswerError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a transport timeout.
func (e *RemoteAnswerError) Timeout() bool {
	if e.Kind != KindTransport || e.Err == nil {
		return false
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

func transportError(msg string, err error) *RemoteAnswerError {
	return &RemoteAnswerError{Kind: KindTransport, Message: msg, Err: err}
}

func payloadError(statusCode int, msg string, err error) *RemoteAnswerError {
	return &RemoteAnswerError{Kind: KindPayload, StatusCode: statusCode, Message: msg, Err: err}
}
