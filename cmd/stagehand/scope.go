package main

import (
	"errors"
	"fmt"

	"github.com/collectiontools/stagehand/internal/cli"
	"github.com/collectiontools/stagehand/internal/common"
	"github.com/collectiontools/stagehand/internal/config"

	"github.com/spf13/cobra"
)

func scopeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scope",
		Short: "Manage the search directories used by match",
	}

	cmd.AddCommand(scopeAddCmd())
	cmd.AddCommand(scopeListCmd())
	cmd.AddCommand(scopeRemoveCmd())
	cmd.AddCommand(scopeClearCmd())

	return cmd
}

func scopeAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <directory>...",
		Short: "Add directories to the search scope",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			for _, arg := range args {
				dir := config.ExpandPath(arg)
				if _, err := store.AddSearchDir(ctx, dir); err != nil {
					if errors.Is(err, common.ErrDuplicateEntry) {
						fmt.Println(cli.FormatWarning(fmt.Sprintf("already in scope: %s", dir)))
						continue
					}
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("added %s", dir)))
			}
			return nil
		},
	}
}

func scopeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the search scope in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			dirs, err := store.ListSearchDirs(ctx)
			if err != nil {
				return err
			}
			if len(dirs) == 0 {
				fmt.Println(cli.FormatWarning("search scope is empty; add directories with 'stagehand scope add'"))
				return nil
			}

			for _, dir := range dirs {
				fmt.Printf("%2d. %s\n", dir.Position+1, dir.Path)
			}
			return nil
		},
	}
}

func scopeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <directory>",
		Short: "Remove a directory from the search scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			dir := config.ExpandPath(args[0])
			if err := store.RemoveSearchDir(ctx, dir); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("not in scope: %s", dir), nil)
				}
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("removed %s", dir)))
			return nil
		},
	}
}

func scopeClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every directory from the search scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearSearchDirs(ctx); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("search scope cleared"))
			return nil
		},
	}
}
