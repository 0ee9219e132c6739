package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
	"github.com/riyan-hx/Lumid.ai/internal/logging"
	"github.com/riyan-hx/Lumid.ai/internal/protocol"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(logging.Discard())
	go h.Run()
	t.Cleanup(h.Stop)
	return h
}

func receive(t *testing.T, conn *Connection) []byte {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		require.True(t, ok, "send channel closed")
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestPublishReachesEveryConnection(t *testing.T) {
	h := startHub(t)
	a := h.NewConnection(nil)
	b := h.NewConnection(nil)
	h.Register(a)
	h.Register(b)
	assert.Equal(t, 2, h.ConnectionCount())

	h.Publish(domain.StateSnapshot{
		CurrentSessionID: "s1",
		TurnState:        domain.TurnStateSending,
		InFlight:         true,
	})

	for _, conn := range []*Connection{a, b} {
		var msg protocol.StateMessage
		require.NoError(t, json.Unmarshal(receive(t, conn), &msg))
		assert.Equal(t, protocol.TypeState, msg.Type)
		assert.Equal(t, "s1", msg.State.CurrentSessionID)
		assert.True(t, msg.State.InFlight)
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	conn := h.NewConnection(nil)
	h.Register(conn)
	h.Unregister(conn)

	assert.Eventually(t, func() bool { return h.ConnectionCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-conn.Send
	assert.False(t, ok)
	assert.ErrorIs(t, h.SendToConnection(conn, []byte("x")), ErrConnectionClosed)
}

func TestSlowConnectionIsDropped(t *testing.T) {
	h := startHub(t)
	slow := h.NewConnection(nil)
	fast := h.NewConnection(nil)
	h.Register(slow)
	h.Register(fast)

	for i := 0; i < sendBufferSize; i++ {
		require.NoError(t, h.SendToConnection(slow, []byte("filler")))
	}
	assert.ErrorIs(t, h.SendToConnection(slow, []byte("overflow")), ErrBufferFull)

	h.Broadcast([]byte(`{"type":"state"}`))
	assert.Equal(t, `{"type":"state"}`, string(receive(t, fast)))
	assert.Eventually(t, func() bool { return h.ConnectionCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestSendJSONToConnection(t *testing.T) {
	h := startHub(t)
	conn := h.NewConnection(nil)
	h.Register(conn)

	require.NoError(t, h.SendJSONToConnection(conn, protocol.NewError("r1", protocol.ErrorCodeTurnInFlight, "busy")))

	var msg protocol.ErrorMessage
	require.NoError(t, json.Unmarshal(receive(t, conn), &msg))
	assert.Equal(t, protocol.TypeError, msg.Type)
	assert.Equal(t, "r1", msg.RequestID)
	assert.Equal(t, protocol.ErrorCodeTurnInFlight, msg.Code)
}

func TestRegisterAfterStop(t *testing.T) {
	h := NewHub(logging.Discard())
	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()
	h.Stop()
	<-done

	conn := h.NewConnection(nil)
	h.Register(conn)
	_, ok := <-conn.Send
	assert.False(t, ok)
	assert.Equal(t, 0, h.ConnectionCount())

	h.Publish(domain.StateSnapshot{})
}
