package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

// APIClient talks to the chat HTTP API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the server at baseURL.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sessionsResponse struct {
	Sessions         []domain.ChatSession `json:"sessions"`
	CurrentSessionID string               `json:"current_session_id"`
}

// SubmitTurn sends text as a new turn. A nil result means the server ignored blank text.
func (c *APIClient) SubmitTurn(ctx context.Context, text string) (*domain.TurnResult, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.turn(ctx, "/v1/turns", body)
}

// RetryTurn re-sends the last user message of the current session.
func (c *APIClient) RetryTurn(ctx context.Context) (*domain.TurnResult, error) {
	return c.turn(ctx, "/v1/turns/retry", nil)
}

func (c *APIClient) turn(ctx context.Context, path string, body []byte) (*domain.TurnResult, error) {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	var res domain.TurnResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode turn: %w", err)
	}
	return &res, nil
}

// ListSessions returns every session and the current selection.
func (c *APIClient) ListSessions(ctx context.Context) ([]domain.ChatSession, string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/sessions", nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	var out sessionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("failed to decode sessions: %w", err)
	}
	return out.Sessions, out.CurrentSessionID, nil
}

// Export downloads a transcript of the session in the given format.
func (c *APIClient) Export(ctx context.Context, sessionID, format string) ([]byte, error) {
	path := fmt.Sprintf("/v1/sessions/%s/export?format=%s", url.PathEscape(sessionID), url.QueryEscape(format))
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return data, nil
}

// do sends the request and turns non-2xx replies into errors.
func (c *APIClient) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	var apiErr struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(resp.Body)
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
	}
	return nil, fmt.Errorf("server returned %d", resp.StatusCode)
}
