package insights

import "time"

// Clock supplies "now" for current-period and window-end computations.
// Injecting it keeps every aggregate deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a Clock backed by the wall clock, in UTC.
func SystemClock() Clock { return systemClock{} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// FixedClock returns a Clock pinned to t.
func FixedClock(t time.Time) Clock { return fixedClock{t} }
