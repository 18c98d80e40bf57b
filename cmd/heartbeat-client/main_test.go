package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/vinayprograms/heartbeatkit/errors"
	"github.com/vinayprograms/heartbeatkit/heartbeat"
	"github.com/vinayprograms/heartbeatkit/logging"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags error: %v", err)
	}
	if opts.path != heartbeat.DefaultPath {
		t.Errorf("path = %q, want %q", opts.path, heartbeat.DefaultPath)
	}
	if opts.interval != 5*time.Second {
		t.Errorf("interval = %v, want 5s", opts.interval)
	}
	if opts.level != logging.LevelInfo {
		t.Errorf("level = %v, want INFO", opts.level)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	opts, err := parseFlags([]string{"--heartbeat-file", "/tmp/hb.txt", "--interval", "250ms", "--log-level", "debug"})
	if err != nil {
		t.Fatalf("parseFlags error: %v", err)
	}
	if opts.path != "/tmp/hb.txt" || opts.interval != 250*time.Millisecond || opts.level != logging.LevelDebug {
		t.Errorf("opts = %+v", opts)
	}
}

func TestParseFlags_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"positional path", []string{"hb.txt"}},
		{"zero interval", []string{"--interval", "0s"}},
		{"empty path", []string{"--heartbeat-file", ""}},
		{"bad level", []string{"--log-level", "loud"}},
		{"unknown flag", []string{"--verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("parseFlags(%v) = %v, want INVALID_INPUT", tt.args, err)
			}
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	for _, arg := range []string{"-h", "--help"} {
		if _, err := parseFlags([]string{arg}); err != pflag.ErrHelp {
			t.Errorf("parseFlags(%s) = %v, want ErrHelp", arg, err)
		}
	}
}

func TestRun_HelpAndErrors(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"--help"}, &stderr); code != 0 {
		t.Errorf("--help exit = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "Usage: heartbeat-client") {
		t.Errorf("usage not printed:\n%s", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"extra"}, &stderr); code != 1 {
		t.Errorf("positional exit = %d, want 1", code)
	}
}
