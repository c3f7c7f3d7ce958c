package display

import (
	"fmt"
	"os"
	"time"

	"github.com/rbatista/convmux/internal/journal"
	"github.com/rbatista/convmux/internal/term"
)

// PrintSummary writes the end-of-run report: per-kind outcome counts, total
// processed, reclaimed space, and elapsed time.
func PrintSummary(s journal.Summary, reclaimedBytes int64, elapsed time.Duration, cancelled bool) {
	fmt.Fprintln(os.Stdout, "==============================")
	if cancelled {
		fmt.Fprintln(os.Stdout, term.Yellow+"Run cancelled"+term.NC)
	}
	fmt.Fprintf(os.Stdout, "Processed: %d\n", s.Total)
	fmt.Fprintf(os.Stdout, "  %sSuccess:%s         %d\n", term.Green, term.NC, s.Success)
	fmt.Fprintf(os.Stdout, "  %sToo small:%s       %d\n", term.Yellow, term.NC, s.TooSmall)
	fmt.Fprintf(os.Stdout, "  %sMissing output:%s  %d\n", term.Red, term.NC, s.MissingOutput)
	fmt.Fprintf(os.Stdout, "  %sProcess failure:%s %d\n", term.Red, term.NC, s.ProcessFailure)
	fmt.Fprintf(os.Stdout, "  %sInterrupted:%s     %d\n", term.Cyan, term.NC, s.Interrupted)
	fmt.Fprintf(os.Stdout, "Space reclaimed: %s\n", FormatBytes(reclaimedBytes))
	fmt.Fprintf(os.Stdout, "Elapsed: %s\n", FormatDuration(elapsed))
}
