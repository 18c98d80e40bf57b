// Package scenario drives a heartbeat writer through the liveness
// signatures a supervisor has to tell apart.
//
// # Scenarios
//
//	normal          beat every 3-7s (uniform) for the duration, exit 0
//	crash_periodic  as normal, but after each sleep die with 20% chance (exit 1)
//	hang            beat every 5s twice, then stop beating and never exit
//	sigterm_test    beat every 5s until a termination signal, exit 0
//	long_request    beat, block for the duration, beat again, exit 0
//
// The cadences come from Timing and can be overridden from a TOML file.
//
// # Cancellation
//
// Every sleep selects on the run context. Once it is cancelled the Runner
// writes nothing further and Run returns nil, so a SIGTERM relayed by the
// shutdown package ends any scenario with exit status 0. The hang stall
// is a plain wait on the context, not a polling loop.
//
// # Errors
//
// Unknown scenario names and bad timing are INVALID_INPUT errors reported
// before any heartbeat. Heartbeat write failures are IO errors and end
// the run: the harness fails fast so a supervisor sees the sink failure.
// A simulated crash is SIMULATED_CRASH.
package scenario
