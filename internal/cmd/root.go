package cmd

import (
	"github.com/dendrascience/mirror-shard/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the mirror-shard CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mirror-shard",
		Short: "mirror-shard - Maintenance tools for a local package archive mirror",
		Long: `mirror-shard keeps a local mirror of package archives manageable.

Flat directories holding hundreds of thousands of archives are sorted into
a fixed two-level bucket layout keyed on the first two characters of each
file name. Per-version metadata from a line-delimited JSON index is then
written next to every archive it describes.

Use subcommands to perform different operations:
  - shard: Sort a flat archive directory into buckets
  - index: Write metadata sidecars next to mirrored archives
  - count: Report bucket occupancy of a sharded tree
  - layout: Print the bucket partition table`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	groupMirror := "mirror"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupMirror,
		Title: "Mirror Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	shardCmd := NewShardCmd()
	indexCmd := NewIndexCmd()
	countCmd := NewCountCmd()
	layoutCmd := NewLayoutCmd()
	versionCmd := NewVersionCmd()

	shardCmd.GroupID = groupMirror
	indexCmd.GroupID = groupMirror
	countCmd.GroupID = groupUtilities
	layoutCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(shardCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
