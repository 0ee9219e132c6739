package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
	"github.com/riyan-hx/Lumid.ai/internal/export"
	"github.com/riyan-hx/Lumid.ai/internal/session"
)

// ListSessionsResponse is returned by GET /v1/sessions.
type ListSessionsResponse struct {
	Sessions         []domain.ChatSession `json:"sessions"`
	CurrentSessionID string               `json:"current_session_id,omitempty"`
}

// ListSessions returns every session newest-created-first.
// GET /v1/sessions
func (h *Handler) ListSessions(c echo.Context) error {
	snap := h.service.Snapshot()
	return c.JSON(http.StatusOK, ListSessionsResponse{
		Sessions:         snap.Sessions,
		CurrentSessionID: snap.CurrentSessionID,
	})
}

// CreateSession starts a new conversation and selects it.
// POST /v1/sessions
func (h *Handler) CreateSession(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.service.CreateSession())
}

// GetCurrentSession returns the selected session.
// GET /v1/sessions/current
func (h *Handler) GetCurrentSession(c echo.Context) error {
	sess, ok := h.service.CurrentSession()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no session selected"})
	}
	return c.JSON(http.StatusOK, sess)
}

// GetSession returns one session.
// GET /v1/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	sess, err := h.service.Session(c.Param("session_id"))
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// SelectSession makes a session current.
// POST /v1/sessions/:session_id/select
func (h *Handler) SelectSession(c echo.Context) error {
	sessionID := c.Param("session_id")
	if err := h.service.SelectSession(sessionID); err != nil {
		return sessionError(c, err)
	}
	sess, err := h.service.Session(sessionID)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// DeleteSession removes a session.
// DELETE /v1/sessions/:session_id
func (h *Handler) DeleteSession(c echo.Context) error {
	if err := h.service.DeleteSession(c.Param("session_id")); err != nil {
		return sessionError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportSession downloads a session transcript.
// GET /v1/sessions/:session_id/export?format=md|json|jsonl|yaml
func (h *Handler) ExportSession(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "md"
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess, err := h.service.Session(c.Param("session_id"))
	if err != nil {
		return sessionError(c, err)
	}

	var buf bytes.Buffer
	if err := exporter.Export(sess, &buf); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to export session"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename(sess, exporter)))
	return c.Blob(http.StatusOK, exporter.ContentType(), buf.Bytes())
}

func sessionError(c echo.Context, err error) error {
	if errors.Is(err, session.ErrSessionNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
