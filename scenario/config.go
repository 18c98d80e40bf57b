package scenario

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/vinayprograms/heartbeatkit/errors"
	"github.com/vinayprograms/heartbeatkit/heartbeat"
	"github.com/vinayprograms/heartbeatkit/logging"
)

// DefaultDuration applies when no duration argument is given.
const DefaultDuration = 30 * time.Second

// maxDurationSeconds is the longest duration a time.Duration can hold.
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

// Config is the resolved, immutable configuration of one harness run.
type Config struct {
	Scenario      Name
	Duration      time.Duration
	HeartbeatFile string
	Timing        Timing

	// Seed fixes the random source. Zero picks one at random.
	Seed uint64

	// TimingFile is the TOML file Timing was loaded from, if any.
	TimingFile string

	LogLevel logging.Level

	// CleanStart removes a leftover heartbeat file before the first beat.
	CleanStart bool
}

// DefaultConfig returns the configuration used when no arguments are given.
func DefaultConfig() Config {
	return Config{
		Scenario:      Normal,
		Duration:      DefaultDuration,
		HeartbeatFile: heartbeat.DefaultPath,
		Timing:        DefaultTiming(),
		LogLevel:      logging.LevelInfo,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !c.Scenario.Valid() {
		_, err := ParseName(string(c.Scenario))
		return err
	}
	if c.Duration < 0 {
		return errors.InvalidInput("duration must not be negative")
	}
	if c.HeartbeatFile == "" {
		return errors.InvalidInput("heartbeat file must not be empty")
	}
	return c.Timing.Validate()
}

// flagValues collects raw flag input before it is resolved into Config.
type flagValues struct {
	heartbeatFile string
	timingFile    string
	seed          uint64
	logLevel      string
	cleanStart    bool
}

func newFlagSet(name string, v *flagValues) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.StringVar(&v.heartbeatFile, "heartbeat-file", heartbeat.DefaultPath, "path of the heartbeat file")
	fs.StringVar(&v.timingFile, "config", "", "TOML file with a [timing] table overriding the default cadences")
	fs.Uint64Var(&v.seed, "seed", 0, "random seed for jitter and crashes (0 picks one)")
	fs.StringVar(&v.logLevel, "log-level", string(logging.LevelInfo), "minimum log level: debug, info, warn, error")
	fs.BoolVar(&v.cleanStart, "clean-start", false, "remove an existing heartbeat file before the first beat")
	fs.BoolP("help", "h", false, "show help")
	return fs
}

// ParseArgs resolves command-line arguments (without the program name):
//
//	[scenario] [duration-seconds] [--heartbeat-file PATH] [flags]
//
// The heartbeat path is only accepted through --heartbeat-file. A third
// positional argument, or a non-numeric duration, is the ambiguous legacy
// path form and is rejected. Returns pflag.ErrHelp when help was asked for.
func ParseArgs(args []string) (Config, error) {
	cfg := DefaultConfig()

	var v flagValues
	fs := newFlagSet("scenario-client", &v)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return Config{}, err
		}
		return Config{}, errors.WrapWithCode(err, errors.ErrCodeInvalidInput, "parsing flags")
	}
	if help, _ := fs.GetBool("help"); help {
		return Config{}, pflag.ErrHelp
	}

	positional := fs.Args()
	if len(positional) > 2 {
		return Config{}, errors.InvalidInput(
			fmt.Sprintf("unexpected argument %q: pass the heartbeat file with --heartbeat-file", positional[2]))
	}

	if len(positional) > 0 {
		name, err := ParseName(positional[0])
		if err != nil {
			return Config{}, err
		}
		cfg.Scenario = name
	}

	if len(positional) > 1 {
		secs, err := strconv.ParseInt(positional[1], 10, 64)
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return Config{}, errors.InvalidInput(fmt.Sprintf("duration %q is out of range", positional[1]))
		}
		if err != nil || secs < 0 {
			return Config{}, errors.InvalidInput(
				fmt.Sprintf("duration %q is not a whole number of seconds (heartbeat files go in --heartbeat-file)", positional[1]))
		}
		if secs > maxDurationSeconds {
			return Config{}, errors.InvalidInput(
				fmt.Sprintf("duration %q is out of range (at most %d seconds)", positional[1], maxDurationSeconds))
		}
		cfg.Duration = time.Duration(secs) * time.Second
	}

	cfg.HeartbeatFile = v.heartbeatFile
	cfg.Seed = v.seed
	cfg.CleanStart = v.cleanStart

	level, err := logging.ParseLevel(v.logLevel)
	if err != nil {
		return Config{}, errors.WrapWithCode(err, errors.ErrCodeInvalidInput, "parsing --log-level")
	}
	cfg.LogLevel = level

	if v.timingFile != "" {
		timing, err := LoadTiming(v.timingFile, cfg.Timing)
		if err != nil {
			return Config{}, err
		}
		cfg.Timing = timing
		cfg.TimingFile = v.timingFile
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Usage returns the help text for the scenario client.
func Usage(program string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s [scenario] [duration-seconds] [flags]\n\n", program)
	b.WriteString("Simulates a monitored process writing a heartbeat file, so a supervisor's\n")
	b.WriteString("failure detection can be exercised.\n\nScenarios:\n")
	for _, name := range Names {
		fmt.Fprintf(&b, "  %-15s %s\n", name, name.Description())
	}
	fmt.Fprintf(&b, "\nDuration defaults to %d seconds. Exit status is 0 on completion or SIGTERM,\n", int(DefaultDuration/time.Second))
	b.WriteString("1 on a configuration error, a heartbeat write failure, or a simulated crash.\n\nFlags:\n")

	var v flagValues
	b.WriteString(newFlagSet(program, &v).FlagUsages())
	return b.String()
}
