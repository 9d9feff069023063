// Command organize-crates sorts a flat archive directory into two-level
// buckets. It is the shard subcommand of mirror-shard as its own binary.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/mirror-shard/internal/cmd"
)

func main() {
	root := cmd.NewShardCmd()
	root.Use = "organize-crates"
	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}
