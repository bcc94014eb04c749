package game

import "time"

// EventKind is the type of a host input event.
type EventKind int

const (
	EventDirection EventKind = iota
	EventStart
	EventNextLevel
	EventResize
	EventTick
)

func (k EventKind) String() string {
	switch k {
	case EventDirection:
		return "direction"
	case EventStart:
		return "start"
	case EventNextLevel:
		return "next"
	case EventResize:
		return "resize"
	case EventTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Event is a single input delivered to a session.
type Event struct {
	Kind      EventKind
	Direction Direction // EventDirection only
	Now       time.Time // EventTick; zero means the session clock
}

// DirectionEvent returns a move event.
func DirectionEvent(d Direction) Event {
	return Event{Kind: EventDirection, Direction: d}
}

// TickEvent returns a timer event stamped with now.
func TickEvent(now time.Time) Event {
	return Event{Kind: EventTick, Now: now}
}

// Handle dispatches ev to the matching session operation.
func (s *Session) Handle(ev Event) {
	switch ev.Kind {
	case EventDirection:
		s.Move(ev.Direction)
	case EventStart:
		s.StartGame()
	case EventNextLevel:
		s.LoadNextLevel()
	case EventResize:
		s.Resize()
	case EventTick:
		now := ev.Now
		if now.IsZero() {
			now = s.now()
		}
		s.Tick(now)
	}
}
