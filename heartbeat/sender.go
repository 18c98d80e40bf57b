package heartbeat

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vinayprograms/heartbeatkit/clock"
	"github.com/vinayprograms/heartbeatkit/logging"
)

// SenderConfig configures the baseline heartbeat loop.
type SenderConfig struct {
	// Path of the heartbeat file.
	// Default: heartbeat.txt
	Path string

	// Interval between heartbeats.
	// Default: 5 seconds
	Interval time.Duration

	// Clock supplies time and ticks.
	// Default: clock.Real()
	Clock clock.Clock

	// Logger receives one line per beat and per failure.
	Logger *logging.Logger
}

// Validate checks the configuration.
func (c *SenderConfig) Validate() error {
	if c.Interval < 0 {
		return ErrInvalidConfig
	}
	if c.Logger == nil {
		return ErrInvalidConfig
	}
	return nil
}

// DefaultSenderConfig returns configuration with sensible defaults.
func DefaultSenderConfig() SenderConfig {
	return SenderConfig{
		Path:     DefaultPath,
		Interval: 5 * time.Second,
	}
}

// Sender writes heartbeats forever on a fixed interval. A failed write is
// logged and the loop carries on.
type Sender struct {
	writer   *Writer
	interval time.Duration
	clock    clock.Clock
	logger   *logging.Logger

	beats    atomic.Int64
	failures atomic.Int64

	running atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewSender creates a Sender.
func NewSender(cfg SenderConfig) (*Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	interval := cfg.Interval
	if interval == 0 {
		interval = DefaultSenderConfig().Interval
	}

	c := cfg.Clock
	if c == nil {
		c = clock.Real()
	}

	return &Sender{
		writer:   NewWriter(cfg.Path, c),
		interval: interval,
		clock:    c,
		logger:   cfg.Logger,
	}, nil
}

// Start begins the heartbeat loop on its own goroutine. The first beat is
// written immediately.
func (s *Sender) Start(ctx context.Context) error {
	if s.running.Swap(true) {
		return ErrAlreadyStarted
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.run(ctx)
	return nil
}

func (s *Sender) run(ctx context.Context) {
	defer close(s.doneCh)

	if ctx.Err() != nil {
		s.running.Store(false)
		return
	}
	s.beat()

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.running.Store(false)
			return
		case <-s.stopCh:
			return
		case <-ticker.C():
			// A tick and a cancellation can land together.
			if ctx.Err() != nil {
				s.running.Store(false)
				return
			}
			s.beat()
		}
	}
}

func (s *Sender) beat() {
	at, err := s.writer.Beat()
	if err != nil {
		s.failures.Add(1)
		s.logger.HeartbeatFailed(s.writer.Path, err)
		return
	}
	s.beats.Add(1)
	s.logger.HeartbeatSent(s.writer.Path, at)
}

// Stop ends the loop and waits for it to exit.
func (s *Sender) Stop() error {
	if !s.running.Swap(false) {
		return ErrNotStarted
	}
	close(s.stopCh)
	<-s.doneCh
	return nil
}

// Done is closed when the loop exits, whether by Stop or by context
// cancellation. Nil before Start.
func (s *Sender) Done() <-chan struct{} {
	return s.doneCh
}

// Path returns the heartbeat file path.
func (s *Sender) Path() string {
	return s.writer.Path
}

// Beats returns the number of successful writes.
func (s *Sender) Beats() int64 {
	return s.beats.Load()
}

// Failures returns the number of failed writes.
func (s *Sender) Failures() int64 {
	return s.failures.Load()
}
