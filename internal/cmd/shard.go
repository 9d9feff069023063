package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dendrascience/mirror-shard/internal/config"
	"github.com/dendrascience/mirror-shard/shard"
	"github.com/spf13/cobra"
)

// NewShardCmd creates and returns the shard subcommand.
// It sorts the top-level files of a flat directory into buckets.
func NewShardCmd() *cobra.Command {
	var (
		flags     runFlags
		sourceDir string
	)

	cmd := &cobra.Command{
		Use:   "shard",
		Short: "Sort a flat archive directory into two-level buckets",
		Long: `Move every file at the top level of the source directory into
<first>/<second>/ buckets derived from the first two characters of its name.

Letters get one first-level directory each (A..Z) with second-level groups of
four letters (AA-AD, AE-AH, ...). Names starting with a digit go to 0-9 and
everything else to OTHER/OTHER. All buckets are created before any file moves.

With --dry-run nothing is created or moved; the projected number of files
per bucket is logged instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("source-dir") {
				cfg.SourceDir = sourceDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			run, err := openRun(cmd, cfg)
			if err != nil {
				return err
			}
			defer run.Close()
			return runShard(cmd.Context(), cfg, run.Logger)
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source-dir", "s", "", "Directory containing the archive files")
	addRunFlags(cmd, &flags, "Dry run mode (no files will be moved)")

	return cmd
}

func runShard(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.Info(fmt.Sprintf("Starting organization of crates in %s", cfg.SourceDir))
	if err := requireRoot(logger, "Source", cfg.SourceDir); err != nil {
		return err
	}

	res, err := shard.Relocate(ctx, cfg.SourceDir, shard.Options{
		Workers: cfg.Threads,
		DryRun:  cfg.DryRun,
		Logger:  logger,
	})
	if err != nil {
		logger.Error(err.Error())
		return err
	}

	if cfg.DryRun {
		for _, line := range res.Occupancy.Lines() {
			logger.Info(line)
		}
		logger.Info(fmt.Sprintf("DRY RUN COMPLETE: Would have organized %d files", res.Total))
		return nil
	}
	logger.Info(fmt.Sprintf("Organization complete: %d/%d files successfully organized", res.Moved, res.Total))
	return nil
}
