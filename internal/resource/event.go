package resource

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
	// ReloadedEvent signals that the whole collection was replaced, e.g. after
	// an import, and that subscribers should refetch rather than patch.
	ReloadedEvent EventType = "reloaded"
)

type (
	// EventType identifies the type of event
	EventType string

	// Event represents an event in the lifecycle of a note, category, alert,
	// or any other entity published via a broker.
	Event[T any] struct {
		Type    EventType
		Payload T
	}
)

func NewEvent[T any](t EventType, payload T) Event[T] {
	return Event[T]{Type: t, Payload: payload}
}
