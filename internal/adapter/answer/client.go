package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MsgInvalidFormat is the failure message used when a reply carries no answer.
const MsgInvalidFormat = "Invalid response format from API"

// Client posts questions to an answer endpoint over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	// statusMessage formats the failure message for a non-2xx reply whose body
	// has no error field.
	statusMessage func(code int) string
}

// Option configures a Client.
type Option func(*Client)

// WithStatusMessage overrides the message used for bare non-2xx replies.
func WithStatusMessage(f func(code int) string) Option {
	return func(c *Client) {
		c.statusMessage = f
	}
}

// NewClient creates a new answer client. A zero timeout leaves the transport
// without a deadline.
func NewClient(endpoint string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		statusMessage: func(code int) string {
			return fmt.Sprintf("HTTP error! status: %d", code)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL questions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchAnswer sends one question and waits for a single reply.
func (c *Client) FetchAnswer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	body, err := json.Marshal(Request{Question: question})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", transportError("failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError("failed to send request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError("failed to read response", err)
	}

	var data Response
	decodeErr := json.Unmarshal(respBody, &data)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := c.statusMessage(resp.StatusCode)
		if decodeErr == nil && data.Error != "" {
			msg = data.Error
		}
		return "", &RemoteAnswerError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Message:    msg,
			Details:    data.Details,
		}
	}

	if decodeErr != nil {
		return "", payloadError(resp.StatusCode, MsgInvalidFormat, decodeErr)
	}
	if strings.TrimSpace(data.Answer) == "" {
		return "", payloadError(resp.StatusCode, MsgInvalidFormat, nil)
	}

	return data.Answer, nil
}
