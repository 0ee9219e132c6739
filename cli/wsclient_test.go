package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
	"github.com/riyan-hx/Lumid.ai/internal/protocol"
)

func TestWSURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://localhost:8080", "ws://localhost:8080/ws", false},
		{"http://localhost:8080/", "ws://localhost:8080/ws", false},
		{"https://lumid.example.com/chat", "wss://lumid.example.com/chat/ws", false},
		{"ftp://nope", "", true},
	}
	for _, tt := range tests {
		got, err := wsURL(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDecodeServerMessage(t *testing.T) {
	data, err := json.Marshal(protocol.NewState(domain.StateSnapshot{CurrentSessionID: "s1", InFlight: true}))
	require.NoError(t, err)
	msg, err := decodeServerMessage(data)
	require.NoError(t, err)
	state, ok := msg.(stateMsg)
	require.True(t, ok)
	assert.Equal(t, "s1", state.state.CurrentSessionID)
	assert.True(t, state.state.InFlight)

	data, err = json.Marshal(protocol.NewError("r1", protocol.ErrorCodeSessionNotFound, "session not found"))
	require.NoError(t, err)
	msg, err = decodeServerMessage(data)
	require.NoError(t, err)
	assert.Equal(t, serverErrorMsg{code: protocol.ErrorCodeSessionNotFound, message: "session not found"}, msg)

	_, err = decodeServerMessage([]byte(`{"type":"mystery"}`))
	assert.Error(t, err)
	_, err = decodeServerMessage([]byte(`not json`))
	assert.Error(t, err)
}
