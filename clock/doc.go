// Package clock lets heartbeat cadences run against either wall time or a
// hand-driven fake.
//
// Production code is given Real(). Tests construct Fake() and move time
// explicitly:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go runner.Run(ctx)
//	c.WaitForTimers(1)         // the runner is asleep
//	c.Advance(5 * time.Second) // and now it wakes
package clock
