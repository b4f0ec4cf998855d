package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/collectiontools/stagehand/internal/service"

	"github.com/schollz/progressbar/v3"
)

const progressSteps = 1000

// NewProgressBar builds a terminal progress bar and the ProgressFunc that
// drives it from reconciliation fractions.
func NewProgressBar(w io.Writer, description string) (service.ProgressFunc, *progressbar.ProgressBar) {
	bar := progressbar.NewOptions(progressSteps,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	fn := func(fraction float64) {
		if err := bar.Set(int(fraction * progressSteps)); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	return fn, bar
}
