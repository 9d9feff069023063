// Command organize-metadata writes metadata sidecars next to mirrored
// archives. It is the index subcommand of mirror-shard as its own binary.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/mirror-shard/internal/cmd"
)

func main() {
	root := cmd.NewIndexCmd()
	root.Use = "organize-metadata"
	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}
