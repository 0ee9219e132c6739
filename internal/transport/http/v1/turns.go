package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
	"github.com/riyan-hx/Lumid.ai/internal/service"
)

// SubmitTurnRequest is the body of POST /v1/turns.
type SubmitTurnRequest struct {
	Text string `json:"text"`
}

// SubmitTurn sends a user message and returns the completed turn.
// POST /v1/turns
func (h *Handler) SubmitTurn(c echo.Context) error {
	var req SubmitTurnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	res, err := h.service.SubmitTurn(c.Request().Context(), req.Text, false)
	return turnResponse(c, res, err)
}

// RetryTurn re-sends the last user message of the current session.
// POST /v1/turns/retry
func (h *Handler) RetryTurn(c echo.Context) error {
	res, err := h.service.RetryLastTurn(c.Request().Context())
	return turnResponse(c, res, err)
}

// DismissError clears the error banner.
// DELETE /v1/error
func (h *Handler) DismissError(c echo.Context) error {
	h.service.DismissError()
	return c.NoContent(http.StatusNoContent)
}

// ListActivities returns the guided activities.
// GET /v1/activities
func (h *Handler) ListActivities(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"activities": h.service.Activities(),
	})
}

// StartActivity sends the prompt of an activity as a turn.
// POST /v1/activities/:action
func (h *Handler) StartActivity(c echo.Context) error {
	res, err := h.service.SubmitActivity(c.Request().Context(), c.Param("action"))
	return turnResponse(c, res, err)
}

func turnResponse(c echo.Context, res *domain.TurnResult, err error) error {
	switch {
	case errors.Is(err, service.ErrTurnInFlight):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownActivity):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	case res == nil:
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, res)
}
