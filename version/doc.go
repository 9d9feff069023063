// Package version provides version information and build metadata for mirror-shard.
//
// Version information comes from three sources, in order of preference:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// Release builds set them with:
//
//	-ldflags "-X github.com/dendrascience/mirror-shard/version.Version=v1.0.0 -X github.com/dendrascience/mirror-shard/version.Commit=abc123"
//
// All mirror-shard binaries (the combined CLI and the standalone organize-crates,
// organize-metadata and counter tools) report the same version through this package.
package version
