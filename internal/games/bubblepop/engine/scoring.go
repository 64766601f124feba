package engine

import (
	"math"
	"time"
)

// ComboTracker counts consecutive matches landing inside the combo window.
type ComboTracker struct {
	Window time.Duration
	Step   float64

	combo   int
	last    time.Time
	hasLast bool
}

// Hit registers a successful match at now and returns the new combo count
// and the score multiplier it earns. A match within Window of the previous
// one extends the combo; otherwise the combo restarts at zero.
func (t *ComboTracker) Hit(now time.Time, difficulty float64) (int, float64) {
	if t.hasLast && now.Sub(t.last) < t.Window {
		t.combo++
	} else {
		t.combo = 0
	}
	t.last = now
	t.hasLast = true
	return t.combo, 1 + float64(t.combo)*t.Step*difficulty
}

// Miss resets the combo after a failed selection.
func (t *ComboTracker) Miss() {
	t.combo = 0
	t.hasLast = false
}

// Combo returns the current combo count.
func (t *ComboTracker) Combo() int {
	return t.combo
}

// Deadline is the instant after which the next match no longer chains.
func (t *ComboTracker) Deadline() time.Time {
	if !t.hasLast {
		return time.Time{}
	}
	return t.last.Add(t.Window)
}

// Points returns floor(size * base * comboMult * difficulty).
func Points(size, base int, comboMult, difficulty float64) int {
	return int(math.Floor(float64(size*base) * comboMult * difficulty))
}

// DefaultDifficulty eases scoring for young players: 1.5 under 7,
// 1.2 under 10, otherwise 1. An unknown age (<= 0) scores as 1.
func DefaultDifficulty(age int) float64 {
	switch {
	case age <= 0:
		return 1.0
	case age < 7:
		return 1.5
	case age < 10:
		return 1.2
	default:
		return 1.0
	}
}
