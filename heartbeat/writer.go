package heartbeat

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vinayprograms/heartbeatkit/clock"
)

// FileMode is the permission of the heartbeat file. It is world-readable
// so a supervisor running as another user can poll it.
const FileMode os.FileMode = 0o644

// Write atomically replaces the file at path with the record for t. The
// value goes to a temporary file in the same directory, is synced, and is
// renamed into place. The parent directory must already exist.
func Write(path string, t time.Time) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	file, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary heartbeat file: %w", err)
	}
	tmp := file.Name()

	if _, err := file.WriteString(Format(t)); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing heartbeat: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing heartbeat: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing heartbeat: %w", err)
	}
	if err := os.Chmod(tmp, FileMode); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("setting heartbeat permissions: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming heartbeat into place: %w", err)
	}
	return nil
}

// Remove deletes the heartbeat file. Returns nil when it does not exist.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing heartbeat file: %w", err)
	}
	return nil
}

// Writer writes the current time of Clock to Path on each Beat. Errors
// are returned to the caller untouched by logging.
type Writer struct {
	Path  string
	Clock clock.Clock
}

// NewWriter returns a Writer for path. A nil clock means clock.Real().
func NewWriter(path string, c clock.Clock) *Writer {
	if path == "" {
		path = DefaultPath
	}
	if c == nil {
		c = clock.Real()
	}
	return &Writer{Path: path, Clock: c}
}

// Beat writes one heartbeat and returns the timestamp written.
func (w *Writer) Beat() (time.Time, error) {
	now := w.Clock.Now()
	if err := Write(w.Path, now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}
