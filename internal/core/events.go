package core

// Event is a one-way notification from a game to its host.
// Events carry no reply path; the host consumes them in the loop turn
// that produced them.
type Event interface {
	event()
}

// HighScoreReported carries a candidate high score. Games may emit the
// same value repeatedly and in any order relative to other events.
type HighScoreReported struct {
	Score int
}

func (HighScoreReported) event() {}

// HapticRequested asks the host for one short haptic pulse.
type HapticRequested struct{}

func (HapticRequested) event() {}

// Emitter collects events during a single step.
// The zero value is ready to use.
type Emitter struct {
	events []Event
}

// Emit appends an event.
func (e *Emitter) Emit(ev Event) {
	e.events = append(e.events, ev)
}

// Drain returns the collected events and resets the emitter.
// Returns nil if nothing was emitted.
func (e *Emitter) Drain() []Event {
	if len(e.events) == 0 {
		return nil
	}
	out := e.events
	e.events = nil
	return out
}
