package scenario

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/vinayprograms/heartbeatkit/errors"
	"github.com/vinayprograms/heartbeatkit/logging"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantScenario Name
		wantDuration time.Duration
		wantFile     string
	}{
		{"no args", nil, Normal, 30 * time.Second, "heartbeat.txt"},
		{"scenario only", []string{"hang"}, Hang, 30 * time.Second, "heartbeat.txt"},
		{"scenario and duration", []string{"long_request", "12"}, LongRequest, 12 * time.Second, "heartbeat.txt"},
		{"zero duration", []string{"normal", "0"}, Normal, 0, "heartbeat.txt"},
		{"flag after positionals", []string{"crash_periodic", "60", "--heartbeat-file", "/tmp/hb.txt"}, CrashPeriodic, time.Minute, "/tmp/hb.txt"},
		{"flag before positionals", []string{"--heartbeat-file=/tmp/a.txt", "sigterm_test"}, SigtermTest, 30 * time.Second, "/tmp/a.txt"},
		{"flag between positionals", []string{"normal", "--heartbeat-file", "x.txt", "5"}, Normal, 5 * time.Second, "x.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("ParseArgs error: %v", err)
			}
			if cfg.Scenario != tt.wantScenario {
				t.Errorf("Scenario = %q, want %q", cfg.Scenario, tt.wantScenario)
			}
			if cfg.Duration != tt.wantDuration {
				t.Errorf("Duration = %v, want %v", cfg.Duration, tt.wantDuration)
			}
			if cfg.HeartbeatFile != tt.wantFile {
				t.Errorf("HeartbeatFile = %q, want %q", cfg.HeartbeatFile, tt.wantFile)
			}
		})
	}
}

func TestParseArgs_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown scenario", []string{"explode"}, "unknown scenario"},
		{"legacy trailing path", []string{"normal", "30", "hb.txt"}, "--heartbeat-file"},
		{"legacy path as duration", []string{"normal", "hb.txt"}, "--heartbeat-file"},
		{"fractional duration", []string{"normal", "1.5"}, "whole number"},
		{"negative duration", []string{"normal", "--", "-3"}, "whole number"},
		{"duration wraps to small value", []string{"long_request", "18446744074"}, "out of range"},
		{"duration wraps negative", []string{"long_request", "9300000000"}, "out of range"},
		{"duration beyond int64", []string{"long_request", "99999999999999999999"}, "out of range"},
		{"unknown flag", []string{"--verbose"}, "parsing flags"},
		{"bad log level", []string{"--log-level", "loud"}, "log-level"},
		{"empty heartbeat file", []string{"--heartbeat-file", ""}, "heartbeat file"},
		{"missing timing file", []string{"--config", "/nonexistent/timing.toml"}, "loading timing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want INVALID_INPUT", errors.Code(err))
			}
			if errors.ExitCode(err) != 1 {
				t.Errorf("exit code = %d, want 1", errors.ExitCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseArgs_LongestDuration(t *testing.T) {
	cfg, err := ParseArgs([]string{"long_request", "9223372036"})
	if err != nil {
		t.Fatalf("ParseArgs error: %v", err)
	}
	if want := 9223372036 * time.Second; cfg.Duration != want {
		t.Errorf("Duration = %v, want %v", cfg.Duration, want)
	}
}

func TestParseArgs_Flags(t *testing.T) {
	path := writeFile(t, "[timing]\nsteady_interval = \"2s\"\n")

	cfg, err := ParseArgs([]string{
		"sigterm_test",
		"--config", path,
		"--seed", "42",
		"--log-level", "debug",
		"--clean-start",
	})
	if err != nil {
		t.Fatalf("ParseArgs error: %v", err)
	}
	if cfg.Timing.SteadyInterval != 2*time.Second {
		t.Errorf("SteadyInterval = %v, want 2s", cfg.Timing.SteadyInterval)
	}
	if cfg.TimingFile != path {
		t.Errorf("TimingFile = %q, want %q", cfg.TimingFile, path)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Errorf("LogLevel = %q, want DEBUG", cfg.LogLevel)
	}
	if !cfg.CleanStart {
		t.Error("CleanStart should be set")
	}
}

func TestParseArgs_Help(t *testing.T) {
	for _, arg := range []string{"--help", "-h"} {
		_, err := ParseArgs([]string{arg})
		if err != pflag.ErrHelp {
			t.Errorf("ParseArgs(%q) = %v, want pflag.ErrHelp", arg, err)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Scenario != Normal || cfg.Duration != DefaultDuration || cfg.HeartbeatFile != "heartbeat.txt" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestUsage(t *testing.T) {
	usage := Usage("scenario-client")
	for _, want := range []string{
		"Usage: scenario-client [scenario] [duration-seconds]",
		"crash_periodic",
		"long_request",
		"--heartbeat-file",
		"--config",
		"30 seconds",
	} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage should contain %q:\n%s", want, usage)
		}
	}
}
