package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/collectiontools/stagehand/internal/cli"
	"github.com/collectiontools/stagehand/internal/common"
	"github.com/collectiontools/stagehand/internal/config"
	"github.com/collectiontools/stagehand/internal/staging"
	"github.com/collectiontools/stagehand/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func stageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Link matched files into a staging tree",
		Long: `Stage builds a timestamped staging tree (OBJS, TN, SMALL) and links
every matched file of a run into OBJS under a sanitized name, falling
back to copies where symlinks are unavailable.`,
		RunE: runStage,
	}

	cmd.Flags().Int64P("run", "r", 0, "run id to stage (default: latest)")
	cmd.Flags().StringP("dest", "o", "", "base directory for the staging tree")

	_ = viper.BindPFlag("staging.dest", cmd.Flags().Lookup("dest"))

	return cmd
}

func runStage(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runID, _ := cmd.Flags().GetInt64("run")
	if runID == 0 {
		run, err := store.GetLatestRun(ctx)
		if err != nil {
			if errors.Is(err, common.ErrNoRun) {
				return common.NewUserError("run 'stagehand match' first", common.ErrNoRun)
			}
			return err
		}
		runID = run.ID
	}

	outcome, err := store.GetRunOutcome(ctx, runID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(fmt.Sprintf("no run with id %d", runID), err)
		}
		return err
	}
	if len(outcome.Matched) == 0 {
		fmt.Println(cli.FormatWarning("run has no matched files to stage"))
		return nil
	}

	dest := viper.GetString("staging.dest")
	if dest == "" {
		dest = config.DefaultStagingRoot()
	}
	dest = config.ExpandPath(dest)

	tree, err := staging.NewTree(dest)
	if err != nil {
		return err
	}

	staged := tree.Stage(runID, outcome.Matched)
	if err := store.SaveStagedFiles(ctx, staged); err != nil {
		return fmt.Errorf("failed to record staged files: %w", err)
	}
	_ = store.SetSetting(ctx, storage.SettingLastStagingID, strconv.FormatInt(runID, 10))

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("staged %d of %d matched files", len(staged), len(outcome.Matched))))
	fmt.Println(cli.RenderBox("Staging tree", tree.Root))
	return nil
}
