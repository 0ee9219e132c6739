// Package ws provides the WebSocket feed that streams chat state to clients
// and accepts chat commands from them.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/riyan-hx/Lumid.ai/internal/config"
	"github.com/riyan-hx/Lumid.ai/internal/hub"
	"github.com/riyan-hx/Lumid.ai/internal/protocol"
	"github.com/riyan-hx/Lumid.ai/internal/service"
	"github.com/riyan-hx/Lumid.ai/internal/session"
)

// Server handles WebSocket connections.
type Server struct {
	cfg      *config.Config
	hub      *hub.Hub
	service  *service.Service
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(cfg *config.Config, h *hub.Hub, svc *service.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		hub:     h,
		service: svc,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes registers the WebSocket route.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", s.HandleWebSocket)
}

// HandleWebSocket upgrades the request, registers the connection and sends
// the current state.
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.log.Warn("failed to upgrade websocket", "error", err)
		return err
	}

	conn := s.hub.NewConnection(ws)
	s.hub.Register(conn)
	ws.SetReadLimit(s.cfg.WSMaxMessageSize)

	if err := s.hub.SendJSONToConnection(conn, protocol.NewState(s.service.Snapshot())); err != nil {
		s.log.Warn("failed to send initial state", "conn_id", conn.ID, "error", err)
	}

	go s.writePump(conn)
	go s.readPump(conn)

	return nil
}

// readPump reads commands from the WebSocket connection.
func (s *Server) readPump(conn *hub.Connection) {
	defer func() {
		s.hub.Unregister(conn)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout()))
	conn.Conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout()))
		return nil
	})

	for {
		_, message, err := conn.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("websocket read failed", "conn_id", conn.ID, "error", err)
			}
			break
		}

		s.handleMessage(conn, message)
	}
}

// writePump writes queued messages and keepalive pings.
func (s *Server) writePump(conn *hub.Connection) {
	ticker := time.NewTicker(s.cfg.PingInterval())
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout()))
			if !ok {
				// Hub closed the channel
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.log.Warn("websocket write failed", "conn_id", conn.ID, "error", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout()))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches incoming commands.
func (s *Server) handleMessage(conn *hub.Connection, data []byte) {
	var base protocol.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		s.sendError(conn, "", protocol.ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	switch base.Type {
	case protocol.TypeSend:
		var msg protocol.SendMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(conn, base.RequestID, protocol.ErrorCodeInvalidMessage, "invalid send message")
			return
		}
		s.runTurn(conn, base.RequestID, func(ctx context.Context) error {
			_, err := s.service.SubmitTurn(ctx, msg.Text, false)
			return err
		})

	case protocol.TypeRetry:
		s.runTurn(conn, base.RequestID, func(ctx context.Context) error {
			_, err := s.service.RetryLastTurn(ctx)
			return err
		})

	case protocol.TypeActivity:
		var msg protocol.ActivityMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(conn, base.RequestID, protocol.ErrorCodeInvalidMessage, "invalid activity message")
			return
		}
		s.runTurn(conn, base.RequestID, func(ctx context.Context) error {
			_, err := s.service.SubmitActivity(ctx, msg.Action)
			return err
		})

	case protocol.TypeNewSession:
		s.service.CreateSession()

	case protocol.TypeSelectSession, protocol.TypeDeleteSession:
		var msg protocol.SessionMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.SessionID == "" {
			s.sendError(conn, base.RequestID, protocol.ErrorCodeInvalidMessage, "session_id is required")
			return
		}
		var err error
		if base.Type == protocol.TypeSelectSession {
			err = s.service.SelectSession(msg.SessionID)
		} else {
			err = s.service.DeleteSession(msg.SessionID)
		}
		if err != nil {
			s.sendCommandError(conn, base.RequestID, err)
		}

	case protocol.TypeDismissError:
		s.service.DismissError()

	default:
		s.sendError(conn, base.RequestID, protocol.ErrorCodeInvalidMessage, "unknown message type: "+base.Type)
	}
}

// runTurn runs a turn off the read loop so pings and other commands keep
// flowing. The turn gets its own deadline; closing the socket does not cancel it.
func (s *Server) runTurn(conn *hub.Connection, requestID string, turn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.TurnTimeout())
		defer cancel()

		if err := turn(ctx); err != nil {
			s.sendCommandError(conn, requestID, err)
		}
	}()
}

func (s *Server) sendCommandError(conn *hub.Connection, requestID string, err error) {
	code := protocol.ErrorCodeInternalError
	switch {
	case errors.Is(err, service.ErrTurnInFlight):
		code = protocol.ErrorCodeTurnInFlight
	case errors.Is(err, session.ErrSessionNotFound):
		code = protocol.ErrorCodeSessionNotFound
	case errors.Is(err, service.ErrUnknownActivity):
		code = protocol.ErrorCodeUnknownActivity
	}
	s.sendError(conn, requestID, code, err.Error())
}

// sendError sends an error message to a connection.
func (s *Server) sendError(conn *hub.Connection, requestID, code, message string) {
	if err := s.hub.SendJSONToConnection(conn, protocol.NewError(requestID, code, message)); err != nil {
		s.log.Debug("failed to send error", "conn_id", conn.ID, "error", err)
	}
}
