package scenario

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vinayprograms/heartbeatkit/errors"
)

// Timing holds the cadence of every scenario.
type Timing struct {
	// JitterMin and JitterMax bound the uniform sleep of normal and
	// crash_periodic.
	// Default: 3s and 7s
	JitterMin time.Duration `toml:"jitter_min"`
	JitterMax time.Duration `toml:"jitter_max"`

	// CrashProbability is the chance, checked once per cycle, that
	// crash_periodic dies.
	// Default: 0.2
	CrashProbability float64 `toml:"crash_probability"`

	// HangInterval and HangBeats shape the beats before hang stalls.
	// Default: 5s, 2 beats
	HangInterval time.Duration `toml:"hang_interval"`
	HangBeats    int           `toml:"hang_beats"`

	// SteadyInterval is the cadence of sigterm_test.
	// Default: 5s
	SteadyInterval time.Duration `toml:"steady_interval"`
}

// DefaultTiming returns the canonical cadences.
func DefaultTiming() Timing {
	return Timing{
		JitterMin:        3 * time.Second,
		JitterMax:        7 * time.Second,
		CrashProbability: 0.2,
		HangInterval:     5 * time.Second,
		HangBeats:        2,
		SteadyInterval:   5 * time.Second,
	}
}

// Validate checks the timing.
func (t Timing) Validate() error {
	switch {
	case t.JitterMin <= 0:
		return errors.InvalidInput("jitter_min must be positive")
	case t.JitterMax < t.JitterMin:
		return errors.InvalidInput("jitter_max must not be below jitter_min")
	case t.CrashProbability < 0 || t.CrashProbability > 1:
		return errors.InvalidInput("crash_probability must be within [0, 1]")
	case t.HangInterval <= 0:
		return errors.InvalidInput("hang_interval must be positive")
	case t.HangBeats < 0:
		return errors.InvalidInput("hang_beats must not be negative")
	case t.SteadyInterval <= 0:
		return errors.InvalidInput("steady_interval must be positive")
	}
	return nil
}

// Jitter draws a sleep uniformly from [JitterMin, JitterMax].
func (t Timing) Jitter(rng *rand.Rand) time.Duration {
	span := int64(t.JitterMax - t.JitterMin)
	return t.JitterMin + time.Duration(rng.Int64N(span+1))
}

// fileConfig is the TOML layout accepted by LoadTiming.
type fileConfig struct {
	Timing Timing `toml:"timing"`
}

// LoadTiming reads a TOML file and applies its [timing] table on top of
// base. Durations are strings such as "5s" or "750ms". Unknown keys are
// rejected so a typo cannot silently fall back to a default.
func LoadTiming(path string, base Timing) (Timing, error) {
	cfg := fileConfig{Timing: base}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Timing{}, errors.WrapWithCode(err, errors.ErrCodeInvalidInput,
			fmt.Sprintf("loading timing from %s", path))
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return Timing{}, errors.InvalidInput(
			fmt.Sprintf("unknown keys in %s: %s", path, strings.Join(keys, ", ")))
	}

	if err := cfg.Timing.Validate(); err != nil {
		return Timing{}, errors.Wrap(err, fmt.Sprintf("timing in %s", path))
	}
	return cfg.Timing, nil
}
