// Package journal implements the append-only conversion outcome log: one
// JSON record per terminated job, written atomically under a single-writer
// lock, plus the read-side aggregation over those records.
//
// The journal is the only artifact shared between concurrent jobs and the
// only input the summary needs, so recording a fact and summarizing facts
// stay independently testable.
package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Kind is the terminal classification of one conversion job.
type Kind string

const (
	Success        Kind = "success"         // Output exists and meets the size threshold; source removed.
	TooSmall       Kind = "too_small"       // Output exists but is under the threshold; source kept.
	MissingOutput  Kind = "missing_output"  // Converter exited 0 but produced no output file.
	ProcessFailure Kind = "process_failure" // Converter exited non-zero.
	Interrupted    Kind = "interrupted"     // Job cancelled mid-run; source kept unconditionally.
)

// Kinds lists every outcome kind in reporting order.
var Kinds = []Kind{Success, TooSmall, MissingOutput, ProcessFailure, Interrupted}

// Record is the immutable outcome of one terminated job. Exactly one Record
// is appended per job that reaches a terminal state; it is never mutated.
type Record struct {
	Time    time.Time `json:"time"`
	RunID   string    `json:"run_id"`
	JobID   string    `json:"job_id"`
	Outcome Kind      `json:"outcome"`
	Input   string    `json:"input"`
	Output  string    `json:"output"`
	SizeKB  int64     `json:"size_kb,omitempty"`
	Detail  string    `json:"detail,omitempty"`
}

// Writer appends Records to a log file as single JSON lines. Appends from
// concurrent jobs are serialized by a mutex so records never interleave.
type Writer struct {
	mu   sync.Mutex
	file *os.File
}

// Open creates or opens the journal at path in append mode, creating parent
// directories as needed.
func Open(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Writer{file: f}, nil
}

// Append writes rec as one JSON line. The marshal happens outside the lock;
// the write is a single call so concurrent appends cannot corrupt records.
func (w *Writer) Append(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = w.file.Write(data)
	return err
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
