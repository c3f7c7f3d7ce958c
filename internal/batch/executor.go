package batch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rbatista/convmux/internal/journal"
)

// stderrTailLines bounds how much converter stderr is attached to failure
// records.
const stderrTailLines = 20

// Executor runs the external converter for one job, classifies the result,
// performs source cleanup on success, and appends exactly one outcome record
// per job.
type Executor struct {
	Converter    string        // Resolved converter executable path.
	Env          []string      // Extra environment entries for the converter.
	MinSizeKB    int64         // Minimum valid output size.
	DeleteSource bool          // Remove the input file on success.
	GraceTimeout time.Duration // SIGTERM-to-SIGKILL grace on cancellation.
	RunID        string
	Journal      *journal.Writer
	Log          *slog.Logger

	reclaimed atomic.Int64
}

// Reclaimed returns the total size in bytes of source files removed so far.
func (e *Executor) Reclaimed() int64 { return e.reclaimed.Load() }

// Run invokes `converter <input>` and blocks until the process exits or ctx
// is cancelled. On cancellation the child's process group receives SIGTERM;
// if it has not exited after GraceTimeout it is killed. The returned kind is
// the job's terminal state.
//
// The source file is removed iff the outcome is Success (and DeleteSource is
// set). A cancelled job never deletes its source, regardless of partial
// output: a truncated output must not be mistaken for a completed one.
func (e *Executor) Run(ctx context.Context, job Job) journal.Kind {
	log := e.Log.With("input", job.Input)

	var inSize int64
	if info, err := os.Stat(job.Input); err == nil {
		inSize = info.Size()
	}

	cmd := exec.CommandContext(ctx, e.Converter, job.Input)
	cmd.Env = append(os.Environ(), e.Env...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// Run the converter in its own process group so cancellation reaches its
	// children (the converter forks ffmpeg).
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if pgid, err := syscall.Getpgid(cmd.Process.Pid); err == nil {
			return syscall.Kill(-pgid, syscall.SIGTERM)
		}
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = e.GraceTimeout

	log.Debug("starting converter", "cmd", e.Converter)
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() != nil && err != nil {
		log.Warn("conversion interrupted", "elapsed", elapsed.Round(time.Millisecond))
		e.record(job, journal.Interrupted, 0, "")
		return journal.Interrupted
	}

	exitCode := 0
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exitCode = ee.ExitCode()
		} else {
			// The process never started (e.g. converter vanished mid-batch).
			log.Error("cannot run converter", "error", err)
			e.record(job, journal.ProcessFailure, 0, err.Error())
			return journal.ProcessFailure
		}
	}

	kind, sizeKB := Classify(exitCode, job.Output, e.MinSizeKB)
	detail := ""

	switch kind {
	case journal.Success:
		log.Info("conversion succeeded", "size_kb", sizeKB, "elapsed", elapsed.Round(time.Millisecond))
	case journal.TooSmall:
		log.Warn("output below size threshold, source kept",
			"size_kb", sizeKB, "min_kb", e.MinSizeKB, "output", job.Output)
	case journal.MissingOutput:
		log.Error("converter exited 0 but produced no output", "output", job.Output)
		detail = stderrTail(stderr.String())
	case journal.ProcessFailure:
		log.Error("converter failed", "exit_code", exitCode)
		detail = stderrTail(stderr.String())
	}

	// Record the outcome before cleanup: a failed removal is a secondary
	// warning and never changes the recorded kind.
	e.record(job, kind, sizeKB, detail)

	if kind == journal.Success && e.DeleteSource {
		if err := os.Remove(job.Input); err != nil {
			log.Warn("cannot remove source file", "error", err)
		} else {
			e.reclaimed.Add(inSize)
			log.Debug("source file removed")
		}
	}
	return kind
}

func (e *Executor) record(job Job, kind journal.Kind, sizeKB int64, detail string) {
	rec := journal.Record{
		Time:    time.Now(),
		RunID:   e.RunID,
		JobID:   job.ID,
		Outcome: kind,
		Input:   job.Input,
		Output:  job.Output,
		SizeKB:  sizeKB,
		Detail:  detail,
	}
	if err := e.Journal.Append(rec); err != nil {
		e.Log.Error("cannot append outcome record", "input", job.Input, "error", err)
	}
}

// stderrTail returns the last few lines of converter stderr for failure
// diagnostics.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > stderrTailLines {
		lines = lines[len(lines)-stderrTailLines:]
	}
	return strings.Join(lines, "\n")
}
