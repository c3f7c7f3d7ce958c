// Package batch implements the conversion core: file discovery, the bounded
// job scheduler, per-job execution of the external converter, and outcome
// classification.
package batch

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Job is one conversion unit: a single source file and its derived output
// path. Jobs are created at batch start and owned by the scheduler until
// dispatched to an executor.
type Job struct {
	ID     string // Unique per job, stamped into the outcome record.
	Input  string // Absolute source path.
	Output string // Same stem as Input with the target extension.
}

// NewJob builds a Job for input, deriving the output path as a sibling file
// with the target extension (the converter writes next to the source).
func NewJob(input, toExt string) Job {
	return Job{
		ID:     uuid.NewString(),
		Input:  input,
		Output: OutputPath(input, toExt),
	}
}

// OutputPath swaps the extension of path for ext (without dot).
func OutputPath(path, ext string) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	return stem + "." + ext
}
