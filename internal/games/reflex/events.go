package reflex

import "github.com/vovakirdan/reflex-arcade/internal/core"

// Event is emitted by a Session whenever observable state changes.
// The set of events is closed; switch on the concrete types below.
type Event interface {
	isEvent()
}

// Stat names a numeric HUD field.
type Stat int

const (
	StatScore Stat = iota
	StatLevel
	StatTime
	StatMisses
	StatTargetSize
	StatTargetSpeed
	StatHighScore
)

func (s Stat) String() string {
	switch s {
	case StatScore:
		return "score"
	case StatLevel:
		return "level"
	case StatTime:
		return "time"
	case StatMisses:
		return "misses"
	case StatTargetSize:
		return "target_size"
	case StatTargetSpeed:
		return "target_speed"
	case StatHighScore:
		return "high_score"
	default:
		return "unknown"
	}
}

// StatChanged carries the new value of a single stat.
type StatChanged struct {
	Stat  Stat
	Value int
}

// PhaseChanged is emitted on every phase transition.
type PhaseChanged struct {
	Phase Phase
}

// TargetMoved reports the target's current rectangle and visibility.
type TargetMoved struct {
	Rect    core.Rect
	Visible bool
}

// HitEvent marks a successful click.
type HitEvent struct {
	At    core.Point
	Score int
}

// MissEvent marks a click that missed the target.
type MissEvent struct {
	At        core.Point
	Remaining int
}

// LevelUpEvent is emitted after the difficulty has been raised.
type LevelUpEvent struct {
	Level int
	Bonus int // Seconds added to the timer
}

// Summary describes a finished round.
type Summary struct {
	FinalScore   int
	MaxLevel     int
	Reason       string
	NewHighScore bool
}

// GameOverEvent is emitted once when a round ends.
type GameOverEvent struct {
	Summary Summary
}

func (StatChanged) isEvent()   {}
func (PhaseChanged) isEvent()  {}
func (TargetMoved) isEvent()   {}
func (HitEvent) isEvent()      {}
func (MissEvent) isEvent()     {}
func (LevelUpEvent) isEvent()  {}
func (GameOverEvent) isEvent() {}

// Sink receives session events.
type Sink interface {
	Handle(ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event)

// Handle calls f(ev).
func (f SinkFunc) Handle(ev Event) {
	f(ev)
}

// Fanout delivers every event to each sink in order.
type Fanout []Sink

// Handle forwards ev to all sinks.
func (fo Fanout) Handle(ev Event) {
	for _, s := range fo {
		if s != nil {
			s.Handle(ev)
		}
	}
}
