package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrLogUnavailable is returned by Summarize when the journal cannot be read.
// Aggregation failure is isolated: it never affects filesystem state already
// applied by completed jobs.
var ErrLogUnavailable = errors.New("outcome log unavailable")

// Summary holds per-kind counts over one run's outcome records.
type Summary struct {
	Total          int
	Success        int
	TooSmall       int
	MissingOutput  int
	ProcessFailure int
	Interrupted    int
}

// Count returns the count for a single outcome kind.
func (s Summary) Count(k Kind) int {
	switch k {
	case Success:
		return s.Success
	case TooSmall:
		return s.TooSmall
	case MissingOutput:
		return s.MissingOutput
	case ProcessFailure:
		return s.ProcessFailure
	case Interrupted:
		return s.Interrupted
	}
	return 0
}

// Summarize scans the journal at path and counts records per outcome kind.
// When runID is non-empty only records stamped with that run are counted,
// so several runs may share one journal file. Lines that do not parse as
// records are skipped; the scan itself is read-only and idempotent.
func Summarize(path, runID string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrLogUnavailable, err)
	}
	defer f.Close()

	var s Summary
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if runID != "" && rec.RunID != runID {
			continue
		}
		s.Total++
		switch rec.Outcome {
		case Success:
			s.Success++
		case TooSmall:
			s.TooSmall++
		case MissingOutput:
			s.MissingOutput++
		case ProcessFailure:
			s.ProcessFailure++
		case Interrupted:
			s.Interrupted++
		}
	}
	if err := sc.Err(); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrLogUnavailable, err)
	}
	return s, nil
}
