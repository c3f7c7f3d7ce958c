// Command convmux is the CLI entrypoint for the batch conversion
// orchestrator.
//
// It resolves configuration, validates it, and either runs system
// diagnostics (--check) or the batch: discover source files, convert each
// with the external converter under a bounded worker pool, and summarize the
// outcome log.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rbatista/convmux/internal/batch"
	"github.com/rbatista/convmux/internal/check"
	"github.com/rbatista/convmux/internal/config"
	"github.com/rbatista/convmux/internal/display"
	"github.com/rbatista/convmux/internal/journal"
	"github.com/rbatista/convmux/internal/logging"
	"github.com/rbatista/convmux/internal/term"
)

// Exit codes. Individual job failures never change the exit code; only
// startup errors and cancellation do.
const (
	exitOK        = 0
	exitConfig    = 1
	exitCancelled = 130 // 128 + SIGINT, documented in --help.
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. File and CONVMUX_* env values load first,
	// then flags override.
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "convmux: %v\n", err)
		return exitConfig
	}
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "convmux: %v\n", err)
		return exitConfig
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "convmux: %v\n", err)
		return exitConfig
	}

	log := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	term.Configure(cfg.ColorMode)

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return exitConfig
		}
		return exitOK
	}

	log.Info("convmux starting", "version", version, "commit", commit,
		"dir", cfg.SearchDir, "from", cfg.FromExt, "to", cfg.ToExt)

	// Fail fast if the converter is unavailable: nothing is dispatched.
	converter, err := check.ResolveConverter(cfg.Converter)
	if err != nil {
		log.Error("cannot resolve converter", "error", err)
		return exitConfig
	}

	jw, err := journal.Open(cfg.Journal)
	if err != nil {
		log.Error("cannot open outcome log", "path", cfg.Journal, "error", err)
		return exitConfig
	}
	defer jw.Close()

	// Phase 3: Signal handling — cancel the batch context on SIGINT/SIGTERM.
	// The scheduler stops admitting, in-flight converters are terminated,
	// and their sources stay on disk.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("interrupt received, stopping admissions and terminating active conversions")
		cancel()
	}()

	// Phase 4: Run the batch and summarize the journal.
	runID := uuid.NewString()
	start := time.Now()
	res, err := batch.Run(ctx, &cfg, log, jw, converter, runID)
	if err != nil {
		log.Error("batch aborted", "error", err)
		return exitConfig
	}

	summary, err := journal.Summarize(cfg.Journal, runID)
	if err != nil {
		// Aggregation failure is isolated: completed jobs already applied
		// their filesystem effects.
		log.Error("cannot summarize outcome log", "error", err)
	} else if res.Discovered > 0 {
		display.PrintSummary(summary, res.ReclaimedBytes, time.Since(start), res.Cancelled)
	}

	if res.Cancelled {
		return exitCancelled
	}
	return exitOK
}
