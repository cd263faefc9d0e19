package cli

import (
	"fmt"
	"io"

	"github.com/agent-sync/agent-sync/internal/syncer"
	"github.com/charmbracelet/lipgloss"
)

// printSummary writes one line per processed rule. Styling is dropped
// automatically when w is not a terminal.
func printSummary(w io.Writer, summary *syncer.Summary) {
	r := lipgloss.NewRenderer(w)
	nameStyle := r.NewStyle().Bold(true)
	changedStyle := r.NewStyle().Foreground(lipgloss.Color("2"))
	quietStyle := r.NewStyle().Faint(true)

	for _, res := range summary.Rules {
		counts := fmt.Sprintf("%d created, %d updated, %d unchanged, %d skipped",
			res.Created, res.Updated, res.Unchanged, res.Skipped)
		style := quietStyle
		if res.Changed() {
			style = changedStyle
		}
		fmt.Fprintf(w, "%s: %s\n", nameStyle.Render(res.Rule), style.Render(counts))
	}

	if summary.DryRun {
		fmt.Fprintln(w, quietStyle.Render("Dry run: no changes were made."))
	}
}
