package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "query.answered").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation all concrete events build on.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewQueryAnswered is emitted after the pipeline finishes one query.
// Consumed by analytics; the request path never waits on it.
func NewQueryAnswered(sessionID, language string, grantTypes []string, documents, citations int, elapsed time.Duration) Event {
	return BaseEvent{
		Type: "query.answered",
		Data: map[string]interface{}{
			"session_id":         sessionID,
			"detected_language":  language,
			"grant_types":        grantTypes,
			"documents":          documents,
			"citations":          citations,
			"processing_time_ms": elapsed.Milliseconds(),
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIngested is emitted when an ingestion batch lands.
func NewDocumentIngested(collection, source string, chunks int) Event {
	return BaseEvent{
		Type: "document.ingested",
		Data: map[string]interface{}{
			"collection": collection,
			"source":     source,
			"chunks":     chunks,
		},
		OccurredAt: time.Now(),
	}
}
