package answer

import (
	"log/slog"
	"strings"
	"time"
)

const (
	// ModeMock answers locally with canned text.
	ModeMock = "MOCK"
	// ModeOffline fails every call so replies come from the fallback responder.
	ModeOffline = "OFFLINE"
)

// NewAnswerClient creates an answer client for the given mode.
// Any mode other than MOCK or OFFLINE returns an HTTP Client for endpoint.
func NewAnswerClient(mode, endpoint string, timeout time.Duration) AnswerClient {
	switch strings.ToUpper(strings.TrimSpace(mode)) {
	case ModeMock:
		slog.Info("LUMID_MODE=MOCK detected, using mock answer client")
		return NewMockClient()
	case ModeOffline:
		slog.Info("LUMID_MODE=OFFLINE detected, every turn will use the fallback responder")
		return NewOfflineClient()
	}
	return NewClient(endpoint, timeout)
}
