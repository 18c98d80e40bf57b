package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Coordinator relays OS signals into a cancellable context.
type Coordinator struct {
	config Config

	mu         sync.Mutex
	received   os.Signal
	signalChan chan os.Signal
	stopCh     chan struct{}
	done       chan struct{}
	handling   bool
	stopOnce   sync.Once
}

// NewCoordinator creates a coordinator. An empty signal list falls back to
// DefaultConfig().Signals.
func NewCoordinator(config Config) *Coordinator {
	if len(config.Signals) == 0 {
		config.Signals = DefaultConfig().Signals
	}
	return &Coordinator{
		config:     config,
		signalChan: make(chan os.Signal, 1),
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// HandleSignals subscribes to the configured signals and returns a child
// of parent that is cancelled, with a *SignalError cause, when the first
// one arrives. Calling it twice panics with ErrAlreadyHandling.
func (c *Coordinator) HandleSignals(parent context.Context) context.Context {
	c.mu.Lock()
	if c.handling {
		c.mu.Unlock()
		panic(ErrAlreadyHandling)
	}
	c.handling = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancelCause(parent)
	signal.Notify(c.signalChan, c.config.Signals...)

	go func() {
		defer close(c.done)
		select {
		case sig := <-c.signalChan:
			c.mu.Lock()
			c.received = sig
			c.mu.Unlock()
			if c.config.OnSignal != nil {
				c.config.OnSignal(sig)
			}
			cancel(&SignalError{Signal: sig})
		case <-parent.Done():
			cancel(context.Cause(parent))
		case <-c.stopCh:
			cancel(nil)
		}
	}()

	return ctx
}

// Signal returns the signal that cancelled the context, or nil.
func (c *Coordinator) Signal() os.Signal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.received
}

// Done is closed once the relay goroutine has exited.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Trigger simulates delivery of SIGTERM (useful for testing).
func (c *Coordinator) Trigger() {
	select {
	case c.signalChan <- syscall.SIGTERM:
	default:
	}
}

// Stop unsubscribes from signals, cancels the context if no signal did,
// and ends the relay goroutine. Safe to call more than once.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		signal.Stop(c.signalChan)
		close(c.stopCh)
	})
}
