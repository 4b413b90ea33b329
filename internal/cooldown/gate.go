package cooldown

import "time"

// Window is the fixed duration during which a repeat notification for the
// same market is suppressed.
const Window = 2 * time.Hour

// Gate decides whether a selected market is still inside its cooldown.
type Gate struct {
	window time.Duration
}

// NewGate constructs a gate; a non-positive window falls back to the fixed
// default.
func NewGate(window time.Duration) Gate {
	if window <= 0 {
		window = Window
	}
	return Gate{window: window}
}

// Suppressed reports whether notifying symbol at now would repeat the
// recorded notification inside the window. Only the recorded symbol is ever
// suppressed; a different symbol passes regardless of elapsed time. An
// unparseable recorded timestamp counts as already expired.
func (g Gate) Suppressed(rec *Record, symbol string, now time.Time) bool {
	if rec == nil || rec.Symbol != symbol {
		return false
	}
	ts, ok := rec.Timestamp()
	if !ok {
		return false
	}
	return now.Sub(ts) < g.window
}
