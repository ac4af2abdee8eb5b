// Package runlog keeps the append-only failure log. Every unit failure lands
// here with enough context (run, stage, symbol, date) to diagnose after the
// fact; the structured console log is ephemeral, this file is not.
package runlog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FailureLog appends failure lines to a plain-text file. Safe for concurrent
// use by the worker pool.
type FailureLog struct {
	mu    sync.Mutex
	path  string
	runID string
}

// New creates a FailureLog writing to path, stamped with a fresh run ID so
// lines from overlapping inspection of several runs stay attributable.
func New(path string) *FailureLog {
	return &FailureLog{
		path:  path,
		runID: uuid.NewString()[:8],
	}
}

// RunID returns the log's run identifier.
func (l *FailureLog) RunID() string { return l.runID }

// Append records one failure. Logging must never take a unit down with it, so
// write errors are swallowed after a best-effort stderr note.
func (l *FailureLog) Append(stage, symbol, date, reason string) {
	line := fmt.Sprintf("%s run=%s stage=%s symbol=%s date=%s reason=%s\n",
		time.Now().Format(time.RFC3339), l.runID, stage, symbol, date, reason)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failure log unavailable: %v\n", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "failure log write failed: %v\n", err)
	}
}
