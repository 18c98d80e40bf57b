package shutdown

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrAlreadyHandling indicates HandleSignals was called twice.
var ErrAlreadyHandling = errors.New("signal handling already started")

// SignalError is the cancellation cause recorded when a signal arrives.
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("received %v", e.Signal)
}

// Config configures the coordinator.
type Config struct {
	// Signals that trigger cancellation.
	// Default: SIGTERM
	Signals []os.Signal

	// OnSignal is called from the signal goroutine before the context is
	// cancelled. Can be used for logging.
	OnSignal func(sig os.Signal)
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Signals: []os.Signal{syscall.SIGTERM},
	}
}
