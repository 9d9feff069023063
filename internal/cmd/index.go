package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dendrascience/mirror-shard/internal/config"
	"github.com/dendrascience/mirror-shard/metaindex"
	"github.com/spf13/cobra"
)

// NewIndexCmd creates and returns the index subcommand.
// It writes a metadata sidecar next to every archive named in the index.
func NewIndexCmd() *cobra.Command {
	var (
		flags      runFlags
		indexDir   string
		mirrorDir  string
		lookup     string
		overwrite  bool
		extensions []string
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Write metadata sidecars next to mirrored archives",
		Long: `Walk a line-delimited JSON package index and, for every version record,
write <name>-<vers>.metadata.json next to the matching archive in the mirror.

Each file in the index holds one JSON object per line and is named after its
package. Records without a "vers" field are ignored. Archives that cannot be
found are logged and skipped.

The mirror is indexed once per run by default (--lookup index). --lookup walk
searches the whole mirror for every record instead, which needs no memory but
is much slower on a large mirror.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("index-dir") {
				cfg.IndexDir = indexDir
			}
			if f.Changed("mirror-dir") {
				cfg.MirrorDir = mirrorDir
			}
			if f.Changed("lookup") {
				cfg.Lookup = lookup
			}
			if f.Changed("overwrite") {
				cfg.Overwrite = overwrite
			}
			if f.Changed("ext") {
				cfg.Extensions = extensions
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			run, err := openRun(cmd, cfg)
			if err != nil {
				return err
			}
			defer run.Close()
			return runIndex(cmd.Context(), cfg, run.Logger)
		},
	}

	cmd.Flags().StringVarP(&indexDir, "index-dir", "i", "", "Directory containing the package index")
	cmd.Flags().StringVarP(&mirrorDir, "mirror-dir", "m", "", "Directory containing the mirrored archives")
	cmd.Flags().StringVar(&lookup, "lookup", config.LookupIndex, "Archive lookup strategy: index or walk")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Rewrite sidecars that already exist")
	cmd.Flags().StringSliceVar(&extensions, "ext", metaindex.DefaultExtensions, "Archive extensions to try, in order")
	addRunFlags(cmd, &flags, "Dry run mode (no files will be created)")

	return cmd
}

func runIndex(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.Info(fmt.Sprintf("Starting organization of metadata from %s to %s", cfg.IndexDir, cfg.MirrorDir))
	if err := requireRoot(logger, "Index", cfg.IndexDir); err != nil {
		return err
	}
	if err := requireRoot(logger, "Mirror", cfg.MirrorDir); err != nil {
		return err
	}

	locator, err := newLocator(ctx, cfg, logger)
	if err != nil {
		logger.Error(err.Error())
		return err
	}

	ix := metaindex.New(locator, metaindex.Options{
		Workers:    cfg.Threads,
		DryRun:     cfg.DryRun,
		Overwrite:  cfg.Overwrite,
		Extensions: cfg.Extensions,
		Filter:     cfg.Filter(),
		Logger:     logger,
	})
	res, err := ix.Run(ctx, cfg.IndexDir)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	if res.FailedFiles > 0 {
		logger.Warn(fmt.Sprintf("%d of %d metadata files could not be processed", res.FailedFiles, res.Files))
	}

	if cfg.DryRun {
		logger.Info(fmt.Sprintf("DRY RUN COMPLETE: Would have organized %d out of %d version metadata files", res.Success, res.Attempted))
		return nil
	}
	logger.Info(fmt.Sprintf("Organization complete: %d out of %d version metadata files successfully organized", res.Success, res.Attempted))
	return nil
}

func newLocator(ctx context.Context, cfg config.Config, logger *slog.Logger) (metaindex.Locator, error) {
	if cfg.Lookup == config.LookupWalk {
		return metaindex.WalkLocator{Root: cfg.MirrorDir}, nil
	}
	idx, err := metaindex.BuildIndex(ctx, cfg.MirrorDir, cfg.Extensions, logger)
	if err != nil {
		return nil, err
	}
	return idx, nil
}
