// Package shutdown turns termination signals into context cancellation.
//
// A process under test must exit 0 promptly on SIGTERM, without a final
// heartbeat and without cleaning up the heartbeat file (that belongs to
// the supervisor). Rather than exiting from the signal goroutine, the
// Coordinator cancels a context; the main loop notices at its next sleep
// and returns through the normal exit path.
//
//	coord := shutdown.NewCoordinator(shutdown.DefaultConfig())
//	ctx := coord.HandleSignals(context.Background())
//	defer coord.Stop()
//
//	err := runner.Run(ctx) // returns once ctx is cancelled
//
// Tests call Trigger instead of sending a real signal.
package shutdown
