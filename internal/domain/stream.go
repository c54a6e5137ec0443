package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamMarkerEvents = "stream:marker:events"
)

// MarkerEventType - тип события жизненного цикла маркера
type MarkerEventType string

const (
	// MarkerEventConfirmed - черновик подтверждён и добавлен в хранилище
	MarkerEventConfirmed MarkerEventType = "marker.confirmed"
	// MarkerEventDiscarded - черновик отменён и удалён со слоя
	MarkerEventDiscarded MarkerEventType = "marker.discarded"
)

// MarkerEvent - событие, публикуемое в stream:marker:events
type MarkerEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Type       MarkerEventType `json:"type"`
	Marker     Marker          `json:"marker"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewMarkerEvent создаёт событие с новым идентификатором
func NewMarkerEvent(eventType MarkerEventType, marker Marker) *MarkerEvent {
	return &MarkerEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		Marker:     marker,
		OccurredAt: time.Now().UTC(),
	}
}

// IsConfirmed - маркер попал в хранилище
func (e *MarkerEvent) IsConfirmed() bool {
	return e.Type == MarkerEventConfirmed
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
