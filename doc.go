// Package main provides the mirror-shard command-line interface.
//
// mirror-shard maintains a local mirror of package archives. It sorts a flat
// directory of archives into a fixed two-level bucket layout and writes
// per-version metadata sidecars next to each archive.
//
// The main binary supports multiple subcommands:
//   - shard: Sort a flat archive directory into buckets
//   - index: Write metadata sidecars from a line-delimited JSON index
//   - count: Report bucket occupancy of a sharded tree
//   - layout: Print the bucket partition table
//   - version: Print build information
package main
