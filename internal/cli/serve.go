package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/leonardoevi/Graph-coloring/internal/config"
	"github.com/leonardoevi/Graph-coloring/internal/coordinator"
	"github.com/leonardoevi/Graph-coloring/internal/transport/tcpnet"
	"github.com/leonardoevi/Graph-coloring/internal/worker"
	"github.com/spf13/cobra"
)

// checkPeers validates the static process group before any connection
// is attempted: a malformed peer list aborts the whole group before
// any work is dispatched, rather than failing confusingly mid-dial.
func checkPeers(cfg config.Config) error {
	if len(cfg.Network.Peers) < 2 {
		return fmt.Errorf("cli: network.peers needs at least 2 entries (one coordinator, one worker), got %d", len(cfg.Network.Peers))
	}
	for i, addr := range cfg.Network.Peers {
		if addr == "" {
			return fmt.Errorf("cli: network.peers[%d] is empty", i)
		}
	}
	return nil
}

func newCoordinatorCmd() *cobra.Command {
	var gf graphFlags

	cmd := &cobra.Command{
		Use:   "coordinator",
		Short: "Run rank 0 of a real multi-process job over TCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadLogged()
			if err != nil {
				return err
			}
			if err := checkPeers(cfg); err != nil {
				log.Error().Err(err).Msg("startup validation failed")
				return err
			}

			g, err := resolveGraph(gf, cfg.Engine.Vertices)
			if err != nil {
				return err
			}
			numWorkers := len(cfg.Network.Peers) - 1

			ctx := context.Background()
			tp, err := tcpnet.Listen(ctx, cfg.Network.Peers[0], numWorkers, g.Size())
			if err != nil {
				return fmt.Errorf("cli: coordinator: %w", err)
			}
			defer tp.Close()

			res, err := coordinator.Run(ctx, tp, g, log)
			if err != nil {
				return fmt.Errorf("cli: coordinator: %w", err)
			}
			printColoring(res.Incumbent.Color, res.Incumbent.TotColors)
			if res.NoParallelism {
				os.Exit(noParallelismExitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gf.input, "input", "", "path to a DIMACS-style graph file")
	cmd.Flags().StringVar(&gf.fixture, "fixture", "", "named fixture: empty, complete, cycle, path, bipartite, petersen")
	cmd.Flags().IntVar(&gf.n, "n", 0, "vertex count")
	cmd.Flags().IntVar(&gf.n2, "n2", 0, "second partition size, for --fixture=bipartite")
	return cmd
}

func newWorkerCmd() *cobra.Command {
	var rank int
	var vertices int

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run one non-coordinator rank of a real multi-process job over TCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadLogged()
			if err != nil {
				return err
			}
			if err := checkPeers(cfg); err != nil {
				log.Error().Err(err).Msg("startup validation failed")
				return err
			}
			if rank == 0 {
				rank = cfg.Network.Rank
			}
			if vertices == 0 {
				vertices = cfg.Engine.Vertices
			}
			if rank < 1 {
				return fmt.Errorf("cli: worker requires --rank >= 1 (or config network.rank)")
			}

			ctx := context.Background()
			tp, err := tcpnet.Dial(ctx, cfg.Network.Peers[0], rank, len(cfg.Network.Peers), vertices)
			if err != nil {
				return fmt.Errorf("cli: worker %d: %w", rank, err)
			}
			defer tp.Close()

			log = log.With().Int("rank", rank).Logger()
			if _, err := worker.Run(ctx, tp, vertices, log); err != nil {
				return fmt.Errorf("cli: worker %d: %w", rank, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rank, "rank", 0, "this process's rank (default: config's network.rank)")
	cmd.Flags().IntVar(&vertices, "n", 0, "vertex count, must match the coordinator's graph (default: config's engine.vertices)")
	return cmd
}
