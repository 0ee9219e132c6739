package answer

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
)

func TestClientFetchAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "how do I relax?", req.Question)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"answer":"breathe slowly"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	got, err := client.FetchAnswer(context.Background(), "  how do I relax?  ")
	require.NoError(t, err)
	assert.Equal(t, "breathe slowly", got)
}

func TestClientFetchAnswerEmptyQuestion(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.FetchAnswer(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.False(t, called)
}

func TestClientFetchAnswerStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"Failed to get response from AI service","details":"API responded with status: 503"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.FetchAnswer(context.Background(), "hello")

	var rae *RemoteAnswerError
	require.True(t, errors.As(err, &rae))
	assert.Equal(t, KindStatus, rae.Kind)
	assert.Equal(t, http.StatusInternalServerError, rae.StatusCode)
	assert.Equal(t, "Failed to get response from AI service", rae.Message)
	assert.Equal(t, "API responded with status: 503", rae.Details)
	assert.False(t, rae.Timeout())
}

func TestClientFetchAnswerBareStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "bad gateway")
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.FetchAnswer(context.Background(), "hello")

	var rae *RemoteAnswerError
	require.True(t, errors.As(err, &rae))
	assert.Equal(t, "HTTP error! status: 502", rae.Message)

	upstream := NewClient(server.URL, time.Second, WithStatusMessage(func(code int) string {
		return fmt.Sprintf("API responded with status: %d", code)
	}))
	_, err = upstream.FetchAnswer(context.Background(), "hello")
	require.True(t, errors.As(err, &rae))
	assert.Equal(t, "API responded with status: 502", rae.Message)
}

func TestClientFetchAnswerMissingAnswer(t *testing.T) {
	bodies := map[string]string{
		"empty object": `{}`,
		"empty answer": `{"answer":""}`,
		"blank answer": `{"answer":"   "}`,
		"not json":     `<html>oops</html>`,
		"wrong type":   `{"answer":42}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			_, err := client.FetchAnswer(context.Background(), "hello")

			var rae *RemoteAnswerError
			require.True(t, errors.As(err, &rae))
			assert.Equal(t, KindPayload, rae.Kind)
			assert.Equal(t, MsgInvalidFormat, rae.Message)
		})
	}
}

func TestClientFetchAnswerTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second)
	_, err := client.FetchAnswer(context.Background(), "hello")

	var rae *RemoteAnswerError
	require.True(t, errors.As(err, &rae))
	assert.Equal(t, KindTransport, rae.Kind)
	assert.False(t, rae.Timeout())
}

func TestClientFetchAnswerTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.FetchAnswer(context.Background(), "hello")

	var rae *RemoteAnswerError
	require.True(t, errors.As(err, &rae))
	assert.Equal(t, KindTransport, rae.Kind)
	assert.True(t, rae.Timeout())
}

func TestOfflineClientAlwaysFails(t *testing.T) {
	_, err := NewOfflineClient().FetchAnswer(context.Background(), "hello")
	var rae *RemoteAnswerError
	require.True(t, errors.As(err, &rae))
	assert.Equal(t, KindTransport, rae.Kind)
}

func TestMockClientEchoes(t *testing.T) {
	got, err := NewMockClient().FetchAnswer(context.Background(), " hi ")
	require.NoError(t, err)
	assert.Contains(t, got, `"hi"`)
}

func TestNewAnswerClientModes(t *testing.T) {
	assert.IsType(t, &MockClient{}, NewAnswerClient("mock", "", time.Second))
	assert.IsType(t, &OfflineClient{}, NewAnswerClient("OFFLINE", "", time.Second))
	c, ok := NewAnswerClient("", "http://localhost:8080/api/chat/", time.Second).(*Client)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8080/api/chat", c.Endpoint())
}
