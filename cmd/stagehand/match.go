package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/collectiontools/stagehand/internal/cli"
	"github.com/collectiontools/stagehand/internal/common"
	"github.com/collectiontools/stagehand/internal/config"
	"github.com/collectiontools/stagehand/internal/match"
	"github.com/collectiontools/stagehand/internal/model"
	"github.com/collectiontools/stagehand/internal/sheet"
	"github.com/collectiontools/stagehand/internal/storage"
	"github.com/collectiontools/stagehand/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [target]...",
		Short: "Match target filenames against the search scope",
		Long: `Match fuzzy-compares target filenames against every file under the
search directories. Targets come from a CSV column (--csv/--column) or
from the command line. Results above the threshold are recorded as
matched and can be staged afterwards.`,
		RunE: runMatch,
	}

	cmd.Flags().StringP("csv", "f", "", "CSV file to take targets from")
	cmd.Flags().StringP("column", "c", "filename", "CSV column holding the target filenames")
	cmd.Flags().IntP("threshold", "t", match.DefaultThreshold, "minimum score (0-100) to count as a match")
	cmd.Flags().StringSliceP("dir", "d", nil, "search directory (repeatable, overrides the saved scope)")
	cmd.Flags().BoolP("interactive", "i", false, "show an interactive progress screen with cancel")

	_ = viper.BindPFlag("match.threshold", cmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("match.interactive", cmd.Flags().Lookup("interactive"))

	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	csvPath, _ := cmd.Flags().GetString("csv")
	column, _ := cmd.Flags().GetString("column")
	overrides, _ := cmd.Flags().GetStringSlice("dir")
	threshold := viper.GetInt("match.threshold")
	interactive := viper.GetBool("match.interactive")

	if threshold < 0 || threshold > 100 {
		return common.NewUserError(fmt.Sprintf("threshold must be between 0 and 100, got %d", threshold), common.ErrInvalidConfig)
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	targets := args
	if csvPath != "" {
		csvPath = config.ExpandPath(csvPath)
		targets, err = sheet.ExtractColumn(csvPath, column)
		if err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		return common.NewUserError("nothing to match; pass targets or a CSV with --csv", common.ErrNoTargets)
	}

	dirs, err := resolveScope(ctx, store, overrides)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return common.NewUserError("add directories with 'stagehand scope add' or pass --dir", common.ErrEmptyScope)
	}

	started := time.Now()

	var outcome *model.ReconciliationOutcome
	if interactive {
		outcome, err = reconcileInteractive(ctx, dirs, targets, threshold)
	} else {
		outcome, err = reconcileWithBar(ctx, dirs, targets, threshold)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println(cli.FormatWarning("Search cancelled, no results were saved"))
			return nil
		}
		return err
	}

	run := &model.Run{
		StartedAt:    started,
		CompletedAt:  time.Now(),
		CSVPath:      csvPath,
		ColumnName:   column,
		Threshold:    threshold,
		TotalCount:   outcome.TotalCount,
		MatchedCount: outcome.MatchedCount,
	}
	runID, err := store.SaveRun(ctx, run, outcome)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	if csvPath != "" {
		_ = store.SetSetting(ctx, storage.SettingLastCSV, csvPath)
		_ = store.SetSetting(ctx, storage.SettingLastColumn, column)
	}

	cli.ReportOutcome(outcome, threshold)
	fmt.Println(cli.RenderOutcomeTable(outcome))
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("saved as run %d", runID)))
	return nil
}

func reconcileWithBar(ctx context.Context, dirs, targets []string, threshold int) (*model.ReconciliationOutcome, error) {
	onProgress, bar := cli.NewProgressBar(os.Stderr, fmt.Sprintf("Matching %d targets", len(targets)))
	defer func() { _ = bar.Close() }()

	return match.Reconcile(ctx, dirs, targets, threshold, onProgress)
}

// reconcileInteractive runs the reconciliation behind a bubbletea screen.
// The screen owns a derived context; its cancel key stops the batch at the
// next polling point and the run ends with context.Canceled.
func reconcileInteractive(ctx context.Context, dirs, targets []string, threshold int) (*model.ReconciliationOutcome, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.NewSearchModel(cancel, len(targets), len(dirs)))

	go func() {
		outcome, err := match.Reconcile(runCtx, dirs, targets, threshold, func(fraction float64) {
			program.Send(tui.ProgressMsg(fraction))
		})
		program.Send(tui.DoneMsg{Outcome: outcome, Err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run interactive search: %w", err)
	}

	screen, ok := final.(tui.SearchModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return screen.Result()
}
