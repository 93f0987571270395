// Package pointer describes raw pointer input from mouse and touch sources.
package pointer

// Kind is the phase of a pointer event.
type Kind uint8

const (
	// Down is a mouse press or a touch start.
	Down Kind = iota + 1
	// Move is a mouse move or a touch move.
	Move
	// Up is a mouse release or a touch end.
	Up
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// ParseKind maps a wire name to a Kind. ok is false for unknown names.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "down":
		return Down, true
	case "move":
		return Move, true
	case "up":
		return Up, true
	default:
		return 0, false
	}
}

// Source identifies the device that produced the event.
type Source uint8

const (
	// Mouse events carry their coordinates on the event itself.
	Mouse Source = iota
	// Touch events carry their coordinates on the changed touch points.
	Touch
)

// ParseSource maps a wire name to a Source, defaulting to Mouse.
func ParseSource(name string) Source {
	if name == "touch" {
		return Touch
	}
	return Mouse
}

// TouchPoint is a single touch point in page coordinates.
type TouchPoint struct {
	ID    int
	PageX float64
	PageY float64
}

// Event is one pointer sample in page coordinates.
type Event struct {
	Kind   Kind
	Source Source
	ID     int
	PageX  float64
	PageY  float64
	// Touches holds the changed touch points for Touch events.
	Touches []TouchPoint
}

// Position returns the absolute page coordinates of ev. Touch events use the
// first changed touch point and fall back to the event coordinates.
func Position(ev Event) (x, y float64) {
	if ev.Source == Touch && len(ev.Touches) > 0 {
		return ev.Touches[0].PageX, ev.Touches[0].PageY
	}
	return ev.PageX, ev.PageY
}
