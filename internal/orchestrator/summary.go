package orchestrator

import (
	"fmt"
	"time"

	"github.com/tonyc973/ForgeSwarm/internal/types"
)

// PrintRunSummary prints a box-draw table to stdout summarizing the finished
// run: plan size, repair iterations used, final status, and wall time.
func PrintRunSummary(bs *types.BuildState, elapsed time.Duration) {
	planned := 0
	if bs.Plan != nil {
		planned = len(bs.Plan.Files)
	}

	const line = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	fmt.Printf("\n%s\n", line)
	fmt.Println("RUN SUMMARY")
	fmt.Printf("%s\n", line)
	fmt.Printf("  %-22s %d\n", "Planned Files:", planned)
	fmt.Printf("  %-22s %d\n", "Repair Iterations:", bs.Iteration)
	fmt.Printf("  %-22s %s\n", "Status:", bs.Status)
	fmt.Printf("  %-22s %s\n", "Total Time:", formatDuration(int(elapsed.Seconds())))
	fmt.Printf("%s\n\n", line)
}

// formatDuration converts a duration in seconds to a human-readable string.
// Examples: "0s", "45s", "3m 15s", "1h 2m 30s".
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "0s"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
