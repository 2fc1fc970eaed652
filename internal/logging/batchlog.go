package logging

import (
	"fmt"
	"os"
	"time"
)

// BatchLog appends timestamped lines to the invoicing log file, one line
// per message in the form "Jan 02 15:04:05: message". The file is opened
// per write so a long-running process never holds it open between steps.
// A nil *BatchLog discards everything, so callers need no guards.
type BatchLog struct {
	path string
	now  func() time.Time
}

// NewBatchLog returns a file-backed batch log, or nil when path is empty.
func NewBatchLog(path string) *BatchLog {
	if path == "" {
		return nil
	}
	return &BatchLog{path: path, now: time.Now}
}

// Append writes one timestamped line to the log file.
func (b *BatchLog) Append(msg string) error {
	if b == nil {
		return nil
	}

	f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open batch log: %w", err)
	}
	defer f.Close()

	line := b.now().Format("Jan 02 15:04:05") + ": " + msg + "\n"
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write batch log: %w", err)
	}
	return nil
}

// Appendf is Append with formatting.
func (b *BatchLog) Appendf(format string, args ...any) error {
	if b == nil {
		return nil
	}
	return b.Append(fmt.Sprintf(format, args...))
}
