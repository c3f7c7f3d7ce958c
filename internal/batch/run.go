package batch

import (
	"context"
	"log/slog"

	"github.com/rbatista/convmux/internal/config"
	"github.com/rbatista/convmux/internal/journal"
)

// RunResult reports what a batch run did. Outcome counts live in the
// journal; this only carries what the journal cannot know.
type RunResult struct {
	Discovered     int   // Matching files found under the search root.
	Admitted       int   // Jobs handed to a worker (each has one outcome record).
	ReclaimedBytes int64 // Total size of source files removed after success.
	Cancelled      bool  // The run was interrupted before completing.
}

// Run is the top-level batch entry point: discover files, fan them out to
// the bounded scheduler, and wait for every admitted job to settle. A
// discovery error is the only error this returns; per-job failures are
// journal records, never batch errors.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, jw *journal.Writer, converter, runID string) (RunResult, error) {
	var res RunResult

	files, err := Discover(cfg.SearchDir, cfg.FromExt)
	if err != nil {
		return res, err
	}
	res.Discovered = len(files)
	if len(files) == 0 {
		log.Info("no matching files found", "dir", cfg.SearchDir, "ext", cfg.FromExt)
		return res, nil
	}

	jobs := make([]Job, 0, len(files))
	for _, f := range files {
		jobs = append(jobs, NewJob(f, cfg.ToExt))
	}

	log.Info("starting batch",
		"files", len(jobs),
		"procs", cfg.Procs,
		"min_size_kb", cfg.MinSizeKB,
		"delete_sources", !cfg.NoDelete,
	)

	ex := &Executor{
		Converter:    converter,
		Env:          cfg.ConverterEnv(),
		MinSizeKB:    cfg.MinSizeKB,
		DeleteSource: !cfg.NoDelete,
		GraceTimeout: cfg.GraceTimeout,
		RunID:        runID,
		Journal:      jw,
		Log:          log,
	}

	sched := &Scheduler{Procs: cfg.Procs, Stagger: cfg.Stagger}
	res.Admitted = sched.Run(ctx, jobs, func(ctx context.Context, job Job) {
		ex.Run(ctx, job)
	})
	res.ReclaimedBytes = ex.Reclaimed()
	res.Cancelled = ctx.Err() != nil
	return res, nil
}
