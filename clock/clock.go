package clock

import "time"

// Clock is the slice of the time package that heartbeat loops and
// scenarios depend on.
type Clock interface {
	Now() time.Time

	// After delivers the time once d has passed. A non-positive d is
	// delivered at once.
	After(d time.Duration) <-chan time.Time

	// NewTicker ticks every d until stopped. Panics if d <= 0.
	NewTicker(d time.Duration) Ticker

	Sleep(d time.Duration)
}

// Ticker delivers periodic ticks. Its channel holds a single pending tick;
// ticks nobody reads in time are lost, as with time.Ticker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}
