package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dendrascience/mirror-shard/internal/config"
	"github.com/dendrascience/mirror-shard/internal/runlog"
	"github.com/dendrascience/mirror-shard/util"
	"github.com/spf13/cobra"
)

// runFlags are the flags shared by the shard and index commands.
type runFlags struct {
	configPath string
	logPath    string
	threads    int
	dryRun     bool
	verbose    bool
}

func addRunFlags(cmd *cobra.Command, f *runFlags, dryRunHelp string) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to a YAML, JSON, TOML or JSONC config file")
	cmd.Flags().StringVar(&f.logPath, "log-path", "", "Append log lines to this file as well as stderr")
	cmd.Flags().IntVarP(&f.threads, "threads", "t", 4, "Number of worker threads")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, dryRunHelp)
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig reads the config file and environment, then applies every flag
// the user set explicitly.
func loadConfig(cmd *cobra.Command, f *runFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-path") {
		cfg.LogPath = f.logPath
	}
	if flags.Changed("threads") {
		cfg.Threads = f.threads
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	return cfg, nil
}

func openRun(cmd *cobra.Command, cfg config.Config) (*runlog.Run, error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return runlog.Open(cfg.LogPath, cmd.ErrOrStderr(), level)
}

// requireRoot checks that dir is an existing directory, logging the problem
// under the given role ("Source", "Index", "Mirror") when it is not.
func requireRoot(logger *slog.Logger, role, dir string) error {
	if dir == "" {
		err := fmt.Errorf("%s directory is not set", role)
		logger.Error(err.Error())
		return err
	}
	err := util.RequireDir(dir)
	switch {
	case errors.Is(err, util.ErrMissingRoot):
		logger.Error(fmt.Sprintf("%s directory %s does not exist", role, dir))
	case err != nil:
		logger.Error(fmt.Sprintf("%s directory %s is not usable: %v", role, dir, err))
	}
	return err
}
