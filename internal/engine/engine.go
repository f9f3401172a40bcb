// Package engine wires one coordinator and P-1 workers together over a
// transport.Transport group and supervises them as a unit. It is the
// seam used both by tests (over chanrpc, entirely in-process) and by
// cmd/graphcoloring's local-simulation subcommand.
package engine

import (
	"context"
	"fmt"

	"github.com/leonardoevi/Graph-coloring/internal/coordinator"
	"github.com/leonardoevi/Graph-coloring/internal/graph"
	"github.com/leonardoevi/Graph-coloring/internal/transport"
	"github.com/leonardoevi/Graph-coloring/internal/transport/chanrpc"
	"github.com/leonardoevi/Graph-coloring/internal/worker"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a local simulation run: the coordinator's
// final answer plus every worker's individual contribution, useful for
// asserting per-process invariants in tests.
type Result struct {
	Coordinator coordinator.Result
	Workers     []worker.Result // indexed by rank-1 (Workers[0] is rank 1, ...)
}

// Run builds a chanrpc group of size workers+1, starts the coordinator
// on rank 0 and one worker goroutine per remaining rank, and waits for
// all of them to finish. A failure in any process cancels the rest via
// ctx and is returned; any such failure is fatal for the whole run.
func Run(ctx context.Context, g *graph.Graph, workers int, log zerolog.Logger) (Result, error) {
	if workers < 1 {
		return Result{}, fmt.Errorf("engine: need at least 1 worker, got %d", workers)
	}
	size := workers + 1
	n := g.Size()

	grp, err := chanrpc.NewGroup(size, n+2, 1)
	if err != nil {
		return Result{}, fmt.Errorf("engine: building transport group: %w", err)
	}

	grpCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, egCtx := errgroup.WithContext(grpCtx)

	var coordRes coordinator.Result
	eg.Go(func() error {
		res, err := coordinator.Run(egCtx, grp.Endpoint(0), g, log.With().Str("role", "coordinator").Logger())
		if err != nil {
			return err
		}
		coordRes = res
		return nil
	})

	workerRes := make([]worker.Result, workers)
	for i := 0; i < workers; i++ {
		rank := i + 1
		idx := i
		eg.Go(func() error {
			res, err := worker.Run(egCtx, grp.Endpoint(rank), n, log.With().Str("role", "worker").Int("rank", rank).Logger())
			if err != nil {
				return err
			}
			workerRes[idx] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return Result{}, fmt.Errorf("engine: run failed: %w", err)
	}

	return Result{Coordinator: coordRes, Workers: workerRes}, nil
}

// Transport exposes the transport.Transport type for callers (e.g.
// cmd/graphcoloring's TCP-mode subcommands) that need to build their own
// group instead of going through Run.
type Transport = transport.Transport
