package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dendrascience/mirror-shard/shard"
	"github.com/spf13/cobra"
)

// NewLayoutCmd creates and returns the layout subcommand.
func NewLayoutCmd() *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the bucket partition table",
		Long: `Print every first-level directory and the second-level groups under it.

With --flat every bucket is printed as a relative path, one per line, in
the order the directories are provisioned.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if flat {
				printBuckets(cmd.OutOrStdout())
				return
			}
			printLayout(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "Print one bucket path per line")

	return cmd
}

func printLayout(w io.Writer) {
	for _, first := range shard.FirstLevels() {
		var names []string
		for _, g := range shard.Groups(first) {
			names = append(names, g.Name)
		}
		fmt.Fprintf(w, "%s/: %s\n", first, strings.Join(names, " "))
	}
}

func printBuckets(w io.Writer) {
	for _, k := range shard.Keys() {
		fmt.Fprintln(w, k.String())
	}
}
