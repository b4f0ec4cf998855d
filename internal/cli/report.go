package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/collectiontools/stagehand/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// ReportOutcome logs one line per target. Severity tracks how badly the
// match missed: no candidate at all or a very low score is an error, a
// near miss is a warning.
func ReportOutcome(outcome *model.ReconciliationOutcome, threshold int) {
	for _, result := range outcome.Matched {
		slog.Info("Found match",
			"target", result.Target,
			"path", result.Path,
			"score", result.Score)
	}

	for _, result := range outcome.Unmatched {
		switch {
		case result.Score == 0:
			slog.Error("No match found", "target", result.Target, "score", 0)
		case result.Score < 50:
			slog.Error("No match found",
				"target", result.Target,
				"closest", result.Path,
				"score", result.Score)
		case result.Score < threshold:
			slog.Warn("Close call below threshold",
				"target", result.Target,
				"closest", result.Path,
				"score", result.Score)
		default:
			// Shouldn't occur given the matched/unmatched split.
			slog.Info("Unmatched despite qualifying score",
				"target", result.Target,
				"closest", result.Path,
				"score", result.Score)
		}
	}
}

// RenderOutcomeTable renders the per-target results as a two-section table
// for terminal display.
func RenderOutcomeTable(outcome *model.ReconciliationOutcome) string {
	var b strings.Builder

	header := TableHeaderStyle.Render(fmt.Sprintf("%-40s %-6s %s", "TARGET", "SCORE", "MATCHED PATH"))
	b.WriteString(header + "\n")

	for _, result := range outcome.Matched {
		line := fmt.Sprintf("%-40s %-6d %s", truncate(result.Target, 40), result.Score, result.Path)
		b.WriteString(SuccessStyle.Render(SuccessIcon+" ") + line + "\n")
	}
	for _, result := range outcome.Unmatched {
		closest := result.Path
		if closest == "" {
			closest = SubtleStyle.Render("(no candidate)")
		}
		line := fmt.Sprintf("%-40s %-6d %s", truncate(result.Target, 40), result.Score, closest)
		b.WriteString(ErrorStyle.Render(ErrorIcon+" ") + line + "\n")
	}

	summary := fmt.Sprintf("%d of %d matched", outcome.MatchedCount, outcome.TotalCount)
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(summary))

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
