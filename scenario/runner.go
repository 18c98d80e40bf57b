package scenario

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/vinayprograms/heartbeatkit/clock"
	"github.com/vinayprograms/heartbeatkit/errors"
	"github.com/vinayprograms/heartbeatkit/heartbeat"
	"github.com/vinayprograms/heartbeatkit/logging"
)

// Beater writes one heartbeat and reports the time it recorded.
// *heartbeat.Writer satisfies it.
type Beater interface {
	Beat() (time.Time, error)
}

// Options carries the collaborators of a Runner. Zero values are filled
// with production defaults.
type Options struct {
	// Beater records heartbeats.
	// Default: heartbeat.NewWriter(cfg.HeartbeatFile, Clock)
	Beater Beater

	// Clock drives sleeps and elapsed time.
	// Default: clock.Real()
	Clock clock.Clock

	// Rand drives jitter and crash decisions.
	// Default: PCG seeded from cfg.Seed, or a random seed when it is zero.
	Rand *rand.Rand

	// Logger receives every state transition.
	// Default: logging.New()
	Logger *logging.Logger
}

// errInterrupted marks a run that ended because its context was
// cancelled.
var errInterrupted = stderrors.New("interrupted")

// Runner executes one scenario. It is single-use.
type Runner struct {
	cfg    Config
	beater Beater
	clock  clock.Clock
	rng    *rand.Rand
	seed   uint64
	logger *logging.Logger

	start time.Time
	beats atomic.Int64
}

// NewRunner validates cfg and binds it to its collaborators.
func NewRunner(cfg Config, opts Options) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := opts.Clock
	if c == nil {
		c = clock.Real()
	}

	beater := opts.Beater
	if beater == nil {
		beater = heartbeat.NewWriter(cfg.HeartbeatFile, c)
	}

	var seed uint64
	rng := opts.Rand
	if rng == nil {
		seed = cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.New()
	}

	return &Runner{
		cfg:    cfg,
		beater: beater,
		clock:  c,
		rng:    rng,
		seed:   seed,
		logger: logger,
	}, nil
}

// Seed returns the seed of the random source, or 0 when Options.Rand was
// supplied.
func (r *Runner) Seed() uint64 {
	return r.seed
}

// Beats returns the number of heartbeats written so far. Safe to call
// while Run is in progress.
func (r *Runner) Beats() int {
	return int(r.beats.Load())
}

// Run executes the scenario until it completes, fails, or ctx is
// cancelled. Completion and cancellation return nil. A filesystem write
// failure returns an IO error; crash_periodic may return SIMULATED_CRASH.
func (r *Runner) Run(ctx context.Context) error {
	name := r.cfg.Scenario
	r.start = r.clock.Now()

	fields := map[string]interface{}{"file": r.cfg.HeartbeatFile}
	if r.seed != 0 {
		fields["seed"] = r.seed
	}
	if r.cfg.TimingFile != "" {
		fields["timing"] = r.cfg.TimingFile
	}
	r.logger.ScenarioStart(string(name), r.cfg.Duration, fields)

	if r.cfg.CleanStart {
		r.cleanStart()
	}

	var err error
	switch name {
	case Normal:
		err = r.runJittered(ctx, false)
	case CrashPeriodic:
		err = r.runJittered(ctx, true)
	case Hang:
		err = r.runHang(ctx)
	case SigtermTest:
		err = r.runSteady(ctx)
	case LongRequest:
		err = r.runLongRequest(ctx)
	default:
		_, err = ParseName(string(name))
	}

	switch {
	case err == nil:
		r.logger.ScenarioComplete(string(name), r.elapsed(), r.Beats())
		return nil
	case stderrors.Is(err, errInterrupted):
		r.logger.SignalReceived(string(name), context.Cause(ctx))
		return nil
	default:
		return err
	}
}

// runJittered implements normal and crash_periodic: beat, sleep a
// jittered interval, and with crashes enabled roll once per cycle.
func (r *Runner) runJittered(ctx context.Context, crashes bool) error {
	for cycle := 1; r.elapsed() < r.cfg.Duration; cycle++ {
		if err := r.beat(ctx); err != nil {
			return err
		}
		if err := r.sleep(ctx, r.cfg.Timing.Jitter(r.rng)); err != nil {
			return err
		}
		// A timer and a cancellation can land together.
		if ctx.Err() != nil {
			return errInterrupted
		}
		if crashes && r.rng.Float64() < r.cfg.Timing.CrashProbability {
			r.logger.SimulatedCrash(cycle, r.elapsed())
			return errors.SimulatedCrash(fmt.Sprintf("simulated crash after cycle %d", cycle),
				errors.WithMetadata("cycle", strconv.Itoa(cycle)))
		}
	}
	return nil
}

// runHang beats HangBeats times, then stays alive without beating until
// cancelled.
func (r *Runner) runHang(ctx context.Context) error {
	for i := 0; i < r.cfg.Timing.HangBeats; i++ {
		if err := r.beat(ctx); err != nil {
			return err
		}
		if err := r.sleep(ctx, r.cfg.Timing.HangInterval); err != nil {
			return err
		}
	}

	r.logger.HangStart(r.Beats())
	<-ctx.Done()
	return errInterrupted
}

// runSteady beats on SteadyInterval until cancelled.
func (r *Runner) runSteady(ctx context.Context) error {
	for {
		if err := r.beat(ctx); err != nil {
			return err
		}
		if err := r.sleep(ctx, r.cfg.Timing.SteadyInterval); err != nil {
			return err
		}
	}
}

// runLongRequest beats, blocks for the whole duration without beating,
// then beats once more.
func (r *Runner) runLongRequest(ctx context.Context) error {
	if err := r.beat(ctx); err != nil {
		return err
	}
	r.logger.Info("long_request_start", map[string]interface{}{
		"silence": r.cfg.Duration.String(),
	})
	if err := r.sleep(ctx, r.cfg.Duration); err != nil {
		return err
	}
	if err := r.beat(ctx); err != nil {
		return err
	}
	r.logger.Info("long_request_done", nil)
	return nil
}

// beat writes one heartbeat unless ctx is already cancelled.
func (r *Runner) beat(ctx context.Context) error {
	if ctx.Err() != nil {
		return errInterrupted
	}
	at, err := r.beater.Beat()
	if err != nil {
		r.logger.HeartbeatFailed(r.cfg.HeartbeatFile, err)
		return errors.Wrap(err, "writing heartbeat",
			errors.WithMetadata("file", r.cfg.HeartbeatFile))
	}
	r.beats.Add(1)
	r.logger.HeartbeatSent(r.cfg.HeartbeatFile, at)
	return nil
}

// sleep waits for d or until ctx is cancelled.
func (r *Runner) sleep(ctx context.Context, d time.Duration) error {
	r.logger.Debug("sleep", map[string]interface{}{"for": d.String()})
	select {
	case <-ctx.Done():
		return errInterrupted
	case <-r.clock.After(d):
		return nil
	}
}

func (r *Runner) elapsed() time.Duration {
	return r.clock.Now().Sub(r.start)
}

func (r *Runner) cleanStart() {
	if err := heartbeat.Remove(r.cfg.HeartbeatFile); err != nil {
		r.logger.Error("clean_start_failed", map[string]interface{}{
			"file":  r.cfg.HeartbeatFile,
			"error": err.Error(),
		})
		return
	}
	r.logger.Info("clean_start", map[string]interface{}{"file": r.cfg.HeartbeatFile})
}
