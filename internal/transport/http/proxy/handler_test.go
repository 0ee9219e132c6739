package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riyan-hx/Lumid.ai/internal/adapter/answer"
	"github.com/riyan-hx/Lumid.ai/internal/logging"
	"github.com/riyan-hx/Lumid.ai/internal/metrics"
	"github.com/riyan-hx/Lumid.ai/internal/policy"
)

type upstreamFunc func(ctx context.Context, question string) (string, error)

func (f upstreamFunc) FetchAnswer(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

func newTestHandler(t *testing.T, up answer.AnswerClient) *Handler {
	t.Helper()
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy, 20)
	require.NoError(t, err)
	return NewHandler(up, engine, metrics.New(), logging.Discard())
}

func doChat(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Chat(e.NewContext(req, rec)))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestChatSuccess(t *testing.T) {
	var got string
	h := newTestHandler(t, upstreamFunc(func(_ context.Context, q string) (string, error) {
		got = q
		return "You are not alone.", nil
	}))

	rec := doChat(t, h, `{"question":"  I feel down  "}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "I feel down", got)
	var resp answer.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "You are not alone.", resp.Answer)
}

func TestChatRejectsBadQuestion(t *testing.T) {
	called := false
	h := newTestHandler(t, upstreamFunc(func(context.Context, string) (string, error) {
		called = true
		return "unused", nil
	}))

	for name, body := range map[string]string{
		"missing":    `{}`,
		"empty":      `{"question":""}`,
		"number":     `{"question":42}`,
		"null":       `{"question":null}`,
		"malformed":  `{"question":`,
		"not object": `["hi"]`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := doChat(t, h, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Question is required and must be a string", decodeError(t, rec).Error)
		})
	}
	assert.False(t, called)
}

func TestChatPolicyBlocks(t *testing.T) {
	h := newTestHandler(t, upstreamFunc(func(context.Context, string) (string, error) {
		t.Fatal("upstream must not be called")
		return "", nil
	}))

	rec := doChat(t, h, `{"question":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "question is empty", decodeError(t, rec).Error)

	rec = doChat(t, h, `{"question":"`+strings.Repeat("x", 21)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "question is too long", decodeError(t, rec).Error)
}

func TestChatUpstreamFailure(t *testing.T) {
	h := newTestHandler(t, upstreamFunc(func(context.Context, string) (string, error) {
		return "", &answer.RemoteAnswerError{Kind: answer.KindStatus, StatusCode: 502, Message: "API responded with status: 502"}
	}))

	rec := doChat(t, h, `{"question":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "Failed to get response from AI service", resp.Error)
	assert.Equal(t, "API responded with status: 502", resp.Details)
}

func TestChatWithoutPolicy(t *testing.T) {
	h := NewHandler(upstreamFunc(func(context.Context, string) (string, error) {
		return "", errors.New("dial tcp: connection refused")
	}), nil, nil, nil)

	rec := doChat(t, h, `{"question":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "dial tcp: connection refused", decodeError(t, rec).Details)
}
