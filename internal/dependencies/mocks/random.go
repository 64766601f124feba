package mocks

import (
	"github.com/vovakirdan/bubble-pop/internal/dependencies/random"
)

// MockRandom returns queued values. When a queue runs dry it falls back to
// IntnDefault / FloatDefault so long-running tests stay deterministic.
type MockRandom struct {
	IntnResults  []int
	intnIndex    int
	FloatResults []float64
	floatIndex   int

	// IntnDefault is returned (modulo n) once IntnResults is exhausted.
	IntnDefault int
	// FloatDefault is returned once FloatResults is exhausted.
	FloatDefault float64
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom whose Float64 defaults to 0.99, so
// probability rolls fail unless a test queues otherwise.
func NewMockRandom() *MockRandom {
	return &MockRandom{FloatDefault: 0.99}
}

// Intn returns the next queued result clamped to [0, n).
func (r *MockRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if r.intnIndex >= len(r.IntnResults) {
		return r.IntnDefault % n
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return ((result % n) + n) % n
}

// Float64 returns the next queued result.
func (r *MockRandom) Float64() float64 {
	if r.floatIndex >= len(r.FloatResults) {
		return r.FloatDefault
	}
	result := r.FloatResults[r.floatIndex]
	r.floatIndex++
	return result
}

// QueueIntn adds values to the Intn result queue.
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueFloat adds values to the Float64 result queue.
func (r *MockRandom) QueueFloat(values ...float64) {
	r.FloatResults = append(r.FloatResults, values...)
}

// Reset clears all queued results.
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.FloatResults = nil
	r.floatIndex = 0
}
