package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarkerEvent(t *testing.T) {
	marker := Marker{
		ID:         42,
		Category:   CategoryText,
		Coordinate: Coordinate{X: 1.5, Y: -2.5},
		Title:      "Bus stop",
	}

	before := time.Now().UTC()
	event := NewMarkerEvent(MarkerEventConfirmed, marker)

	assert.NotEqual(t, uuid.Nil, event.EventID)
	assert.Equal(t, marker, event.Marker)
	assert.False(t, event.OccurredAt.Before(before))
	assert.True(t, event.IsConfirmed())

	other := NewMarkerEvent(MarkerEventDiscarded, marker)
	assert.NotEqual(t, event.EventID, other.EventID)
	assert.False(t, other.IsConfirmed())
}

func TestMarkerEvent_JSON(t *testing.T) {
	event := NewMarkerEvent(MarkerEventDiscarded, Marker{
		ID:         7,
		Category:   CategoryDelete,
		Coordinate: Coordinate{X: 10, Y: 20},
	})

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "marker.discarded", raw["type"])
	assert.Equal(t, event.EventID.String(), raw["event_id"])
	assert.Contains(t, raw, "occurred_at")

	marker, ok := raw["marker"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "delete", marker["category"])
	assert.Equal(t, float64(7), marker["id"])

	var decoded MarkerEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.Marker, decoded.Marker)
	assert.Equal(t, event.Type, decoded.Type)
}
