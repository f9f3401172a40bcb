package main

import (
	"fmt"
	"os"

	"github.com/leonardoevi/Graph-coloring/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graphcoloring:", err)
		os.Exit(1)
	}
}
