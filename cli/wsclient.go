package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
	"github.com/riyan-hx/Lumid.ai/internal/protocol"
)

// WSClient is a subscriber to the server's state feed.
type WSClient struct {
	conn *websocket.Conn
	done chan struct{}
}

// wsURL maps an http(s) base URL to the server's /ws endpoint.
func wsURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	u.Path += "/ws"
	return u.String(), nil
}

// DialWS connects to the state feed of the server at base.
func DialWS(base string) (*WSClient, error) {
	addr, err := wsURL(base)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return &WSClient{conn: conn, done: make(chan struct{})}, nil
}

// Close closes the client connection.
func (c *WSClient) Close() error {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	return c.conn.Close()
}

// Send writes a command to the server.
func (c *WSClient) Send(msgType string, fields map[string]string) error {
	msg := map[string]interface{}{
		"type":       msgType,
		"ts":         time.Now().UnixMilli(),
		"request_id": fmt.Sprintf("req_%d", time.Now().UnixNano()),
	}
	for k, v := range fields {
		msg[k] = v
	}
	return c.conn.WriteJSON(msg)
}

// stateMsg carries a snapshot received from the server.
type stateMsg struct {
	state domain.StateSnapshot
}

// serverErrorMsg is a command the server rejected.
type serverErrorMsg struct {
	code    string
	message string
}

// disconnectedMsg ends the feed.
type disconnectedMsg struct {
	err error
}

// ReadMessages forwards decoded server messages to out until the connection closes.
func (c *WSClient) ReadMessages(out chan<- tea.Msg) {
	defer close(out)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				return
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				err = nil
			}
			out <- disconnectedMsg{err: err}
			return
		}

		msg, err := decodeServerMessage(data)
		if err != nil {
			continue
		}
		out <- msg
	}
}

func decodeServerMessage(data []byte) (tea.Msg, error) {
	var base protocol.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, err
	}

	switch base.Type {
	case protocol.TypeState:
		var msg protocol.StateMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, err
		}
		return stateMsg{state: msg.State}, nil
	case protocol.TypeError:
		var msg protocol.ErrorMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, err
		}
		return serverErrorMsg{code: msg.Code, message: msg.Message}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", base.Type)
	}
}
