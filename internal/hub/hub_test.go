package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBroadcast_ReachesAllSubscribers(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	delivered, err := h.Broadcast(Event{Type: EventMessageCreated, Payload: map[string]string{"user": "alice"}})
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)

	for _, client := range []Client{a, b} {
		var got Event
		require.NoError(t, json.Unmarshal(<-client, &got))
		assert.Equal(t, EventMessageCreated, got.Type)
		assert.Equal(t, map[string]interface{}{"user": "alice"}, got.Payload)
	}
}

func TestBroadcast_DropsForFullClient(t *testing.T) {
	h := NewHub()
	client := h.Subscribe()
	defer h.Unsubscribe(client)

	for i := 0; i < clientBuffer; i++ {
		delivered, err := h.Broadcast(Event{Type: EventMessageCreated})
		require.NoError(t, err)
		require.Equal(t, 1, delivered)
	}

	delivered, err := h.Broadcast(Event{Type: EventMessageCreated})
	require.NoError(t, err)
	assert.Zero(t, delivered)
	assert.Len(t, client, clientBuffer)
}

func TestBroadcast_UnencodablePayload(t *testing.T) {
	h := NewHub()
	_, err := h.Broadcast(Event{Type: EventMessageCreated, Payload: make(chan int)})
	assert.Error(t, err)
}

func TestUnsubscribe_ClosesOnce(t *testing.T) {
	h := NewHub()
	client := h.Subscribe()
	require.Equal(t, 1, h.Len())

	h.Unsubscribe(client)
	h.Unsubscribe(client)

	_, open := <-client
	assert.False(t, open)
	assert.Zero(t, h.Len())
}

func TestClose_DrainsThenCloses(t *testing.T) {
	h := NewHub()
	client := h.Subscribe()

	_, err := h.Broadcast(Event{Type: EventMessageCreated})
	require.NoError(t, err)
	h.Close()

	_, open := <-client
	assert.True(t, open, "buffered event is still delivered")
	_, open = <-client
	assert.False(t, open)
	assert.Zero(t, h.Len())

	// Unsubscribing after Close must not close the channel again.
	h.Unsubscribe(client)
}
