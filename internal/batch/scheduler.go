package batch

import (
	"context"
	"sync"
	"time"
)

// Scheduler is a bounded worker pool: it admits jobs in discovery order to at
// most Procs concurrent invocations of a job function. It holds no per-job
// business logic.
//
// The legacy script bounded concurrency with background processes and a
// polling wait loop; here the bound is structural (a fixed number of
// workers), so it holds by construction rather than by timing.
type Scheduler struct {
	Procs   int           // Concurrency limit, >= 1.
	Stagger time.Duration // Optional delay between admissions.
}

// Run feeds jobs to Procs workers and blocks until every admitted job has
// reached a terminal state. When ctx is cancelled the scheduler stops
// admitting new jobs; in-flight jobs keep running under their own
// cancellation handling, and Run still waits for all of them before
// returning, so no child process is ever orphaned.
//
// The returned count is the number of jobs admitted to a worker. Jobs still
// queued at cancellation time are never admitted and produce no outcome.
func (s *Scheduler) Run(ctx context.Context, jobs []Job, run func(context.Context, Job)) int {
	procs := s.Procs
	if procs < 1 {
		procs = 1
	}
	if procs > len(jobs) {
		procs = len(jobs)
	}
	if procs == 0 {
		return 0
	}

	ch := make(chan Job)
	var wg sync.WaitGroup

	for i := 0; i < procs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range ch {
				run(ctx, job)
			}
		}()
	}

	admitted := 0
feed:
	for _, job := range jobs {
		// Checked before the select so at most one admission can race an
		// in-progress cancellation.
		if ctx.Err() != nil {
			break feed
		}
		if admitted > 0 && s.Stagger > 0 {
			if !sleepCtx(ctx, s.Stagger) {
				break feed
			}
		}
		select {
		case <-ctx.Done():
			break feed
		case ch <- job:
			admitted++
		}
	}
	close(ch)
	wg.Wait()
	return admitted
}

// sleepCtx sleeps for d unless ctx is cancelled first; it reports whether the
// full duration elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
