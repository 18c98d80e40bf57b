package heartbeat

import (
	"errors"
	"os"
	"time"
)

// Status classifies a heartbeat file from a consumer's point of view.
type Status string

const (
	StatusFresh     Status = "fresh"
	StatusStale     Status = "stale"
	StatusMissing   Status = "missing"
	StatusMalformed Status = "malformed"
)

// Check reads path and classifies it against maxAge at now. A record
// exactly maxAge old is still fresh. Errors other than a missing file or
// malformed content (permission denied, for instance) are returned as-is
// with an empty Status.
func Check(path string, maxAge time.Duration, now time.Time) (Status, Record, error) {
	record, err := Read(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		return StatusMissing, Record{}, nil
	case errors.Is(err, ErrMalformed):
		return StatusMalformed, Record{}, nil
	default:
		return "", Record{}, err
	}

	if record.Age(now) > maxAge {
		return StatusStale, record, nil
	}
	return StatusFresh, record, nil
}
