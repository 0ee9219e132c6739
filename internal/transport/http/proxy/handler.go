// Package proxy serves POST /api/chat, the boundary endpoint that forwards a
// question to the configured upstream answerer.
package proxy

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/riyan-hx/Lumid.ai/internal/adapter/answer"
	"github.com/riyan-hx/Lumid.ai/internal/metrics"
	"github.com/riyan-hx/Lumid.ai/internal/policy"
)

const (
	msgQuestionRequired = "Question is required and must be a string"
	msgUpstreamFailed   = "Failed to get response from AI service"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Handler handles answer proxy requests.
type Handler struct {
	upstream answer.AnswerClient
	policy   *policy.Engine
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewHandler creates a new proxy handler. policyEngine may be nil to skip screening.
func NewHandler(upstream answer.AnswerClient, policyEngine *policy.Engine, m *metrics.Metrics, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		upstream: upstream,
		policy:   policyEngine,
		metrics:  m,
		log:      log,
	}
}

// RegisterRoutes registers proxy routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/chat", h.Chat)
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var body map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return h.reply(c, http.StatusBadRequest, ErrorResponse{Error: msgQuestionRequired})
	}
	var question string
	if err := json.Unmarshal(body["question"], &question); err != nil || question == "" {
		return h.reply(c, http.StatusBadRequest, ErrorResponse{Error: msgQuestionRequired})
	}
	question = strings.TrimSpace(question)

	if h.policy != nil {
		decision, reason, err := h.policy.Evaluate(ctx, question)
		if err != nil {
			h.log.Error("question policy failed", "error", err)
			return h.reply(c, http.StatusInternalServerError, ErrorResponse{Error: "failed to evaluate question policy"})
		}
		if decision == policy.DecisionBlock {
			return h.reply(c, http.StatusBadRequest, ErrorResponse{Error: reason})
		}
	}

	ans, err := h.upstream.FetchAnswer(ctx, question)
	if err != nil {
		h.log.Error("upstream answer failed", "error", err)
		return h.reply(c, http.StatusInternalServerError, ErrorResponse{
			Error:   msgUpstreamFailed,
			Details: err.Error(),
		})
	}

	return h.reply(c, http.StatusOK, answer.Response{Answer: ans})
}

func (h *Handler) reply(c echo.Context, status int, body interface{}) error {
	h.metrics.ObserveProxy(status)
	return c.JSON(status, body)
}
