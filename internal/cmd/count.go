package cmd

import (
	"fmt"
	"io"

	"github.com/dendrascience/mirror-shard/shard"
	"github.com/dendrascience/mirror-shard/util"
	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand.
// It reports how many files each bucket of a sharded tree holds.
func NewCountCmd() *cobra.Command {
	var (
		path  string
		above int
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Report bucket occupancy of a sharded tree",
		Long: `Count the files in every bucket of an already sharded directory.

The report has the same shape as the one logged by "shard --dry-run": file
counts and sizes per first-level directory, then per bucket. Files still
sitting at the top level are reported separately.

With --above N the tree is not surveyed; counting stops as soon as more than
N files have been seen, which answers "is this tree bigger than N" quickly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			if err := util.RequireDir(path); err != nil {
				return err
			}
			if above > 0 {
				return runCountAbove(cmd.OutOrStdout(), path, above)
			}
			return runCount(cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVarP(&path, "source-dir", "s", "./", "Sharded directory to count")
	cmd.Flags().IntVar(&above, "above", 0, "Only check whether the tree holds more than this many files")

	return cmd
}

func runCount(w io.Writer, path string) error {
	occ, stray, err := shard.Survey(path)
	if err != nil {
		return fmt.Errorf("error counting files: %w", err)
	}
	if _, err := occ.WriteTo(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "Unsorted files: %d\n", stray)
	fmt.Fprintf(w, "Total files: %d\n", occ.Total()+stray)
	return nil
}

func runCountAbove(w io.Writer, path string, above int) error {
	count, over, err := util.CountSubfile(path, above)
	if err != nil {
		return fmt.Errorf("error counting files: %w", err)
	}
	if over {
		fmt.Fprintf(w, "More than %d files\n", above)
		return nil
	}
	fmt.Fprintf(w, "Total files: %d\n", count)
	return nil
}
