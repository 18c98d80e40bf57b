// Package logging provides timestamped, levelled console output for the
// heartbeat client and the scenario harness. Every state transition a
// supervisor might need to correlate with the heartbeat file goes
// through one of the event helpers below.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// levelPriority maps levels to numeric priority for filtering.
var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel accepts a level name in any case. "warning" is an alias
// for WARN.
func ParseLevel(s string) (Level, error) {
	switch level := Level(strings.ToUpper(strings.TrimSpace(s))); level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return level, nil
	case "WARNING":
		return LevelWarn, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// Logger writes one line per entry:
//
//	LEVEL TIMESTAMP [component] message key=value ... run=<trace id>
type Logger struct {
	mu        *sync.Mutex
	output    io.Writer
	minLevel  Level
	component string
	traceID   string
}

// New creates a Logger writing INFO and above to stderr.
func New() *Logger {
	return &Logger{
		mu:       &sync.Mutex{},
		output:   os.Stderr,
		minLevel: LevelInfo,
	}
}

// WithComponent returns a logger tagged with component. It shares the
// parent's output.
func (l *Logger) WithComponent(component string) *Logger {
	clone := *l
	clone.component = component
	return &clone
}

// WithTraceID returns a logger that appends run=<traceID> to every line.
func (l *Logger) WithTraceID(traceID string) *Logger {
	clone := *l
	clone.traceID = traceID
	return &clone
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

// SetOutput sets the output writer (default: stderr).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields...)
}

// formatFields renders fields as key=value pairs sorted by key.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return " " + strings.Join(parts, " ")
}

func (l *Logger) log(level Level, msg string, fields ...map[string]interface{}) {
	if levelPriority[level] < levelPriority[l.minLevel] {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var fieldStr string
	if len(fields) > 0 && fields[0] != nil {
		fieldStr = formatFields(fields[0])
	}
	if l.traceID != "" {
		fieldStr += " run=" + l.traceID
	}

	var line string
	if l.component != "" {
		line = fmt.Sprintf("%-5s %s [%s] %s%s\n", level, timestamp, l.component, msg, fieldStr)
	} else {
		line = fmt.Sprintf("%-5s %s %s%s\n", level, timestamp, msg, fieldStr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
}

// --- Liveness events ---

// HeartbeatSent logs a successful heartbeat write.
func (l *Logger) HeartbeatSent(path string, at time.Time) {
	l.Info("heartbeat_sent", map[string]interface{}{
		"file": path,
		"ts":   at.UTC().Format(time.RFC3339Nano),
	})
}

// HeartbeatFailed logs a failed heartbeat write.
func (l *Logger) HeartbeatFailed(path string, err error) {
	l.Error("heartbeat_failed", map[string]interface{}{
		"file":  path,
		"error": err.Error(),
	})
}

// ScenarioStart logs the beginning of a scenario run.
func (l *Logger) ScenarioStart(name string, duration time.Duration, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["scenario"] = name
	fields["duration"] = duration.String()
	l.Info("scenario_start", fields)
}

// ScenarioComplete logs a scenario that ended on its own.
func (l *Logger) ScenarioComplete(name string, elapsed time.Duration, beats int) {
	l.Info("scenario_complete", map[string]interface{}{
		"scenario": name,
		"elapsed":  elapsed.String(),
		"beats":    beats,
	})
}

// SignalReceived logs a termination request.
func (l *Logger) SignalReceived(name string, cause error) {
	fields := map[string]interface{}{"scenario": name}
	if cause != nil {
		fields["cause"] = cause.Error()
	}
	l.Info("signal_received", fields)
}

// SimulatedCrash logs the deliberate death of a crash_periodic run.
func (l *Logger) SimulatedCrash(cycle int, elapsed time.Duration) {
	l.Error("simulated_crash", map[string]interface{}{
		"cycle":   cycle,
		"elapsed": elapsed.String(),
	})
}

// HangStart logs the point where heartbeats stop for good.
func (l *Logger) HangStart(beats int) {
	l.Warn("hang_start", map[string]interface{}{
		"beats": beats,
		"note":  "heartbeat stopped, process stays alive",
	})
}
