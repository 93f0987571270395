// Package box implements draggable/resizable boxes.
package box

// EventType names a notification emitted by a box.
type EventType string

const (
	// EventActivated fires when the enable flag turns true.
	EventActivated EventType = "activated"
	// EventDeactivated fires when the enable flag turns false.
	EventDeactivated EventType = "deactivated"
	// EventDragStart fires when dragging begins.
	EventDragStart EventType = "drag-start"
	// EventDragEnd fires when dragging ends.
	EventDragEnd EventType = "drag-end"
	// EventResizeStart fires when resizing begins.
	EventResizeStart EventType = "resize-start"
	// EventResizeEnd fires when resizing ends.
	EventResizeEnd EventType = "resize-end"
)

// UpdateEvent returns the value notification type for a prop, e.g. "update:w".
func UpdateEvent(prop string) EventType {
	return EventType("update:" + prop)
}

// Event is one notification. Value is set for update events only.
type Event struct {
	Box   string    `json:"box"`
	Type  EventType `json:"event"`
	Value any       `json:"value,omitempty"`
}

// Sink receives box notifications.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a func to Sink.
type SinkFunc func(Event)

// Emit calls f.
func (f SinkFunc) Emit(ev Event) { f(ev) }

type nopSink struct{}

func (nopSink) Emit(Event) {}
