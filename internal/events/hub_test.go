package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_EmitReachesSubscribers(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.Emit("req-1", TypeJobSaved, map[string]string{"id": "acme-x-0"})

	var e Event
	require.NoError(t, json.Unmarshal([]byte(<-ch), &e))
	assert.Equal(t, TypeJobSaved, e.Type)
	assert.Equal(t, 1, e.Version)
	assert.Equal(t, "req-1", e.RequestID)
	assert.JSONEq(t, `{"id":"acme-x-0"}`, string(e.Data))
}

func TestHub_SlowSubscriberDrops(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	for i := 0; i < 25; i++ {
		h.Publish("x")
	}
	assert.Len(t, ch, 10)
	h.Unsubscribe(ch)
	h.Unsubscribe(ch)
	assert.Equal(t, 0, h.Subscribers())
}
