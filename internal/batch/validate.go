package batch

import (
	"os"

	"github.com/rbatista/convmux/internal/journal"
)

// Classify maps a converter exit code and the state of the expected output
// file to a terminal outcome kind, returning the measured output size in KB
// when the file exists. It is a pure check: it never creates or deletes
// files, and in particular an undersized output is left on disk for manual
// inspection.
//
// The size comparison is inclusive: an output of exactly minSizeKB is a
// success, one unit below is too small. A threshold of 0 accepts any
// non-empty output; an empty output file is never valid.
func Classify(exitCode int, outputPath string, minSizeKB int64) (journal.Kind, int64) {
	if exitCode != 0 {
		return journal.ProcessFailure, 0
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		// Converter reported success but produced nothing. Kept distinct
		// from ProcessFailure for diagnostics.
		return journal.MissingOutput, 0
	}

	sizeKB := info.Size() / 1024
	if info.Size() == 0 || info.Size() < minSizeKB*1024 {
		return journal.TooSmall, sizeKB
	}
	return journal.Success, sizeKB
}
