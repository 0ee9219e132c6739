package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riyan-hx/Lumid.ai/internal/adapter/answer"
)

func newOpenAIServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "I feel sad", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIAnswererSuccess(t *testing.T) {
	server := newOpenAIServer(t, http.StatusOK, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-test","choices":[{"index":0,"message":{"role":"assistant","content":"You are not alone."},"finish_reason":"stop"}]}`)

	a := NewOpenAI("key", server.URL, "gpt-test", "", time.Second)
	got, err := a.FetchAnswer(context.Background(), " I feel sad ")
	require.NoError(t, err)
	assert.Equal(t, "You are not alone.", got)
}

func TestOpenAIAnswererEmptyChoice(t *testing.T) {
	server := newOpenAIServer(t, http.StatusOK, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-test","choices":[]}`)

	a := NewOpenAI("key", server.URL, "gpt-test", "be kind", time.Second)
	_, err := a.FetchAnswer(context.Background(), "I feel sad")

	var rae *answer.RemoteAnswerError
	require.True(t, errors.As(err, &rae))
	assert.Equal(t, answer.KindPayload, rae.Kind)
}

func TestOpenAIAnswererAPIError(t *testing.T) {
	server := newOpenAIServer(t, http.StatusTooManyRequests, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`)

	a := NewOpenAI("key", server.URL, "gpt-test", "", time.Second)
	_, err := a.FetchAnswer(context.Background(), "I feel sad")

	var rae *answer.RemoteAnswerError
	require.True(t, errors.As(err, &rae))
	assert.Equal(t, answer.KindStatus, rae.Kind)
	assert.Equal(t, http.StatusTooManyRequests, rae.StatusCode)
	assert.Equal(t, "rate limited", rae.Details)
}

func TestNew(t *testing.T) {
	q, err := New(Options{URL: "https://example.invalid/query", Timeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &answer.Client{}, q)

	_, err = New(Options{Provider: ProviderQuery})
	assert.Error(t, err)

	_, err = New(Options{Provider: ProviderOpenAI})
	assert.Error(t, err)

	o, err := New(Options{Provider: "OpenAI", APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIAnswerer{}, o)

	_, err = New(Options{Provider: "carrier-pigeon"})
	assert.Error(t, err)
}
