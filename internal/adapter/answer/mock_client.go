package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MockClient answers every question locally without a network call.
type MockClient struct{}

// NewMockClient creates a new mock answer client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// FetchAnswer returns a canned answer echoing the question.
func (m *MockClient) FetchAnswer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	return fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(question, 100)), nil
}

// OfflineClient fails every call with a transport error, which routes every
// turn through the local fallback responder.
type OfflineClient struct{}

// NewOfflineClient creates a client that is never able to reach the server.
func NewOfflineClient() *OfflineClient {
	return &OfflineClient{}
}

// errOffline is wrapped into every OfflineClient failure.
var errOffline = errors.New("offline mode enabled")

// FetchAnswer always fails.
func (o *OfflineClient) FetchAnswer(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	return "", transportError("failed to send request", errOffline)
}

// truncate shortens s to maxLen runes.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
