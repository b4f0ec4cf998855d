package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/collectiontools/stagehand/internal/cli"
	"github.com/collectiontools/stagehand/internal/common"
	"github.com/collectiontools/stagehand/internal/config"
	"github.com/collectiontools/stagehand/internal/model"
	"github.com/collectiontools/stagehand/internal/sheet"
	"github.com/collectiontools/stagehand/internal/staging"
	"github.com/collectiontools/stagehand/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultBaseURL = "https://collectionbuilder.blob.core.windows.net"

func csvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Inspect and rewrite metadata CSVs",
	}

	cmd.AddCommand(csvExtractCmd())
	cmd.AddCommand(csvValidateCmd())
	cmd.AddCommand(csvRewriteCmd())

	return cmd
}

func csvExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <csv>",
		Short: "Print the target filenames a column would contribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, _ := cmd.Flags().GetString("column")
			values, err := sheet.ExtractColumn(config.ExpandPath(args[0]), column)
			if err != nil {
				return err
			}
			for _, value := range values {
				fmt.Println(value)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d targets", len(values))))
			return nil
		},
	}
	cmd.Flags().StringP("column", "c", "filename", "CSV column holding the target filenames")
	return cmd
}

func csvValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <csv>",
		Short: "Compare a CSV's headings against a verified headings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verified, _ := cmd.Flags().GetString("verified")
			if verified == "" {
				return common.NewUserError("pass the verified headings file with --verified", common.ErrMissingConfig)
			}

			unmatched, err := sheet.ValidateHeadings(config.ExpandPath(args[0]), config.ExpandPath(verified))
			if err != nil {
				return err
			}
			if len(unmatched) == 0 {
				fmt.Println(cli.FormatSuccess("all headings verified"))
				return nil
			}
			for _, heading := range unmatched {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("unverified heading: %s", heading)))
			}
			return nil
		},
	}
	cmd.Flags().String("verified", "", "CSV or single-row file listing the verified headings")
	return cmd
}

func csvRewriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite <csv>",
		Short: "Fill the object and derivative URL columns from a run",
		Long: `Rewrite fills object_location, image_small and image_thumb for every
row whose target was matched in the run, using the staged (sanitized)
filename when the run was staged. Existing URLs are preserved unless
they still reference the target filename.`,
		Args: cobra.ExactArgs(1),
		RunE: runCSVRewrite,
	}

	cmd.Flags().StringP("column", "c", "filename", "CSV column holding the target filenames")
	cmd.Flags().Int64P("run", "r", 0, "run id to take matches from (default: latest)")
	cmd.Flags().String("base-url", "", "blob store base URL")
	cmd.Flags().String("collection", "", "collection path segment for the URLs")
	cmd.Flags().StringP("output", "o", "", "write the rewritten CSV here instead of in place")

	_ = viper.BindPFlag("rewrite.base_url", cmd.Flags().Lookup("base-url"))
	_ = viper.BindPFlag("rewrite.collection", cmd.Flags().Lookup("collection"))

	return cmd
}

func runCSVRewrite(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	csvPath := config.ExpandPath(args[0])
	column, _ := cmd.Flags().GetString("column")
	output, _ := cmd.Flags().GetString("output")

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

	staged, err := stagedForRewrite(cmd, store, runID)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		fmt.Println(cli.FormatWarning("run has no matched files, nothing to rewrite"))
		return nil
	}

	table, err := sheet.ReadTable(csvPath)
	if err != nil {
		return err
	}

	baseURL := viper.GetString("rewrite.base_url")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	opts := sheet.RewriteOptions{
		BaseURL:    baseURL,
		Collection: viper.GetString("rewrite.collection"),
	}

	updates, err := sheet.RewriteURLs(table, column, staged, opts)
	if err != nil {
		return err
	}

	if output == "" {
		output = csvPath
	} else {
		output = config.ExpandPath(output)
	}
	if err := table.Write(output); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("updated %d cells in %s", updates, output)))
	return nil
}

// stagedForRewrite returns the run's staged files. When the run was never
// staged, the rewrite still works from its matches, with the names the
// staging step would have produced.
func stagedForRewrite(cmd *cobra.Command, store *storage.SQLiteStorage, runID int64) ([]model.StagedFile, error) {
	ctx := cmd.Context()

	staged, err := store.ListStagedFiles(ctx, runID)
	if err != nil {
		return nil, err
	}
	if len(staged) > 0 {
		return staged, nil
	}

	outcome, err := store.GetRunOutcome(ctx, runID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewUserError(fmt.Sprintf("no run with id %d", runID), err)
		}
		return nil, err
	}

	for _, result := range outcome.Matched {
		staged = append(staged, model.StagedFile{
			RunID:         runID,
			Target:        result.Target,
			SourcePath:    result.Path,
			SanitizedName: staging.SanitizeFilename(filepath.Base(result.Path)),
		})
	}
	return staged, nil
}
