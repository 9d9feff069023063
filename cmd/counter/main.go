package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/mirror-shard/internal/cmd"
)

func main() {
	root := cmd.NewCountCmd()
	root.Use = "counter [PATH]"
	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}
