// Package cmd provides the command-line interface for mirror-shard.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - shard: Sort a flat archive directory into two-level buckets
//   - index: Write metadata sidecars next to mirrored archives
//   - count: Report bucket occupancy of an already sharded tree
//   - layout: Print the bucket partition table
//   - version: Print build information
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command, so the standalone binaries under
// cmd/ can reuse them.
package cmd
