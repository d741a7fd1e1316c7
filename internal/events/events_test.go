package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	msg, err := Encode(Event{
		Type:    OrderPlaced,
		UserID:  42,
		At:      at,
		Payload: map[string]any{"order_id": 7},
	})
	require.NoError(t, err)

	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "order_placed", got["type"])
	assert.Equal(t, float64(42), got["user_id"])
	assert.Equal(t, float64(7), got["payload"].(map[string]any)["order_id"])
}

func TestEncode_DefaultsTimestamp(t *testing.T) {
	msg, err := Encode(Event{Type: UserLoggedIn, UserID: 1})
	require.NoError(t, err)
	assert.False(t, msg.Time.IsZero())
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: UserRegistered}))
	assert.NoError(t, p.Close())
}

func TestNewKafka(t *testing.T) {
	p := NewKafka([]string{"localhost:9092"}, "shop_events")
	assert.Equal(t, "shop_events", p.w.Topic)
	assert.NoError(t, p.Close())
}
