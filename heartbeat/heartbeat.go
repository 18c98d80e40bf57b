package heartbeat

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Common errors.
var (
	ErrAlreadyStarted = errors.New("heartbeat already started")
	ErrNotStarted     = errors.New("heartbeat not started")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrMalformed      = errors.New("malformed heartbeat record")
)

// DefaultPath is the heartbeat file used when none is configured.
const DefaultPath = "heartbeat.txt"

// Record is the content of a heartbeat file: the producer's clock at the
// last successful write.
type Record struct {
	Timestamp time.Time
}

// Age returns how long ago the record was written, relative to now.
func (r Record) Age(now time.Time) time.Duration {
	return now.Sub(r.Timestamp)
}

// String returns the on-disk representation.
func (r Record) String() string {
	return Format(r.Timestamp)
}

// Format renders t as decimal seconds since the epoch with microsecond
// precision.
func Format(t time.Time) string {
	micros := t.UnixMicro()
	sign := ""
	if micros < 0 {
		sign = "-"
		micros = -micros
	}
	return fmt.Sprintf("%s%d.%06d", sign, micros/1e6, micros%1e6)
}

// Parse decodes a heartbeat record. Surrounding whitespace is ignored.
// Empty, non-numeric, non-finite and negative values are ErrMalformed.
func Parse(s string) (Record, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Record{}, fmt.Errorf("%w: empty", ErrMalformed)
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return Record{}, fmt.Errorf("%w: %q out of range", ErrMalformed, s)
	}

	whole, frac := math.Modf(secs)
	ts := time.Unix(int64(whole), int64(math.Round(frac*1e6))*int64(time.Microsecond))
	return Record{Timestamp: ts}, nil
}

// Read loads and parses the heartbeat file at path. A missing file
// returns an error wrapping os.ErrNotExist; bad content wraps
// ErrMalformed.
func Read(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	record, err := Parse(string(data))
	if err != nil {
		return Record{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return record, nil
}
