package clock

import "time"

// Clock is the time source injected into the booking engine so that
// validation, conflict and refund calculations stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock, normalized to UTC.
func System() Clock {
	return systemClock{}
}

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

// At returns a Clock pinned to t.
func At(t time.Time) Clock {
	return Fixed{T: t}
}
