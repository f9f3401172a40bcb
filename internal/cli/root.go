// Package cli builds the graphcoloring command tree: solve (run the
// engine locally over in-process goroutines), generate (emit a named
// fixture as a DIMACS file), and coordinator/worker (run one process of
// a real multi-process job over tcpnet), the way
// matzehuels-stacktower/internal/cli/root.go builds its own command
// tree and jinterlante1206-AleutianLocal/cmd/aleutian/commands.go lays
// out sibling *Cmd values.
package cli

import (
	"context"

	"github.com/leonardoevi/Graph-coloring/internal/clog"
	"github.com/leonardoevi/Graph-coloring/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the graphcoloring CLI and returns an error if any
// command fails; main translates that into a process exit code.
func Execute() error {
	root := &cobra.Command{
		Use:          "graphcoloring",
		Short:        "Distributed branch-and-bound exact graph coloring",
		Long:         "graphcoloring seeds and explores a branch-and-bound search tree for the chromatic number of a graph, either as in-process goroutines or as a real multi-process job over TCP.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults layered under it)")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCoordinatorCmd())
	root.AddCommand(newWorkerCmd())

	return root.ExecuteContext(context.Background())
}

// loadLogged loads the layered config and builds a logger from it, the
// one piece of startup sequencing every subcommand needs before doing
// anything else.
func loadLogged() (config.Config, clog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, clog.Logger{}, err
	}
	return cfg, clog.New(cfg), nil
}
