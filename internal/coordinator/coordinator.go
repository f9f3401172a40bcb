// Package coordinator implements the rank-0 process: it seeds the
// search via breadth-first expansion, dispatches frontier nodes to
// workers, aggregates their incumbent reports, relays bound updates,
// and detects termination. Its bound-broadcast listener is also where
// the shared-upper-bound channel lives on the coordinator side: the
// aggregation loop below is the coordinator's listener role.
package coordinator

import (
	"context"
	"fmt"

	"github.com/leonardoevi/Graph-coloring/internal/bound"
	"github.com/leonardoevi/Graph-coloring/internal/coloring"
	"github.com/leonardoevi/Graph-coloring/internal/graph"
	"github.com/leonardoevi/Graph-coloring/internal/metrics"
	"github.com/leonardoevi/Graph-coloring/internal/transport"
	"github.com/rs/zerolog"
)

// Result is the outcome of a coordinator run.
type Result struct {
	Incumbent coloring.Node // best (optimal, once the run completes) coloring found
	// NoParallelism is true when the serial seeding phase alone exhausted
	// the search tree: the optimum was proved without dispatching any
	// worker, and no worker ever started its DFS.
	NoParallelism bool
	// UBHistory lists, in order, every value UB took after the value
	// fixed by the seeding phase: one entry per accepted (non-stale)
	// IMPROVED message handled by the aggregation loop.
	UBHistory []int
}

// Run executes the full coordinator lifecycle on tp, whose rank must be
// 0. g is the graph to color; it is broadcast to every worker before any
// search begins.
func Run(ctx context.Context, tp transport.Transport, g *graph.Graph, log zerolog.Logger) (Result, error) {
	if tp.Rank() != 0 {
		return Result{}, fmt.Errorf("coordinator: must run on rank 0, got rank %d", tp.Rank())
	}
	n := g.Size()
	w := tp.Size() - 1

	if _, err := tp.BroadcastBytes(ctx, 0, transport.PackMatrix(g.Matrix())); err != nil {
		return Result{}, fmt.Errorf("coordinator: graph broadcast failed: %w", err)
	}

	ub := bound.New(n)
	frontier, incumbent, _ := seedBFS(g, ub, w, log)

	if len(frontier) == 0 {
		log.Info().Int("tot_colors", incumbent.TotColors).Msg("phase A exhausted the search tree; no parallelism needed")
		if err := terminateWithoutWorkers(ctx, tp, n); err != nil {
			return Result{}, err
		}
		return Result{Incumbent: incumbent, NoParallelism: true}, nil
	}

	log.Info().Int("frontier", len(frontier)).Int("ub", ub.Get()).Int("workers", w).
		Msg("dispatching frontier to workers")
	if err := dispatch(ctx, tp, frontier, w); err != nil {
		return Result{}, err
	}

	finalIncumbent, history, err := aggregate(ctx, tp, n, ub, incumbent, log)
	if err != nil {
		return Result{}, err
	}

	if err := tp.Barrier(ctx); err != nil {
		return Result{}, fmt.Errorf("coordinator: barrier failed: %w", err)
	}
	log.Info().Int("rank", 0).Msg("process completed")

	return Result{Incumbent: finalIncumbent, UBHistory: history}, nil
}

// seedBFS runs the coordinator's serial seeding phase: breadth-first
// expansion of the search tree until the frontier would fit one node
// per worker, or the tree is exhausted serially. Returns the remaining
// frontier (possibly empty) and the best incumbent observed along the
// way.
func seedBFS(g *graph.Graph, ub *bound.Bound, w int, log zerolog.Logger) ([]coloring.Node, coloring.Node, bool) {
	n := g.Size()
	frontier := []coloring.Node{coloring.Empty(n)}
	var incumbent coloring.Node
	haveIncumbent := false

	for len(frontier) > 0 {
		u := frontier[0]
		frontier = frontier[1:]

		if u.IsFinal(n) {
			if u.TotColors < ub.Get() {
				ub.TrySet(u.TotColors)
				incumbent = u
				haveIncumbent = true
				metrics.CurrentUpperBound.Set(float64(u.TotColors))
				log.Debug().Int("tot_colors", u.TotColors).Msg("phase A improved incumbent")
			}
			continue
		}
		if u.TotColors >= ub.Get() {
			continue
		}

		children := u.Expand(g, ub.Get())
		metrics.NodesExpandedTotal.Inc()
		if len(frontier)+len(children) <= w {
			frontier = append(frontier, children...)
		} else {
			frontier = append([]coloring.Node{u}, frontier...)
			break
		}
	}
	return frontier, incumbent, haveIncumbent
}

// dispatch sends exactly one initial message to every worker: an
// INITIAL subtree root to the first len(frontier) workers in FIFO order,
// and an IDLE placeholder to the rest, so every worker receives exactly
// one message before starting its DFS.
func dispatch(ctx context.Context, tp transport.Transport, frontier []coloring.Node, w int) error {
	rank := 1
	for _, nd := range frontier {
		if err := tp.SendNode(ctx, nd, rank, transport.TagInitial); err != nil {
			return fmt.Errorf("coordinator: dispatch to rank %d failed: %w", rank, err)
		}
		rank++
	}
	dummy := coloring.Node{}
	for ; rank <= w; rank++ {
		if err := tp.SendNode(ctx, dummy, rank, transport.TagIdle); err != nil {
			return fmt.Errorf("coordinator: idle dispatch to rank %d failed: %w", rank, err)
		}
	}
	return nil
}

// aggregate is the coordinator's listener loop: it handles IMPROVED and
// DONE from any worker, relays strictly-improving bounds, and finally
// broadcasts the termination sentinel once every worker is done.
func aggregate(ctx context.Context, tp transport.Transport, n int, ub *bound.Bound, incumbent coloring.Node, log zerolog.Logger) (coloring.Node, []int, error) {
	w := tp.Size() - 1
	doneWorkers := 0
	var history []int

	for doneWorkers < w {
		nd, tag, from, err := tp.RecvNode(ctx, -1)
		if err != nil {
			return coloring.Node{}, nil, fmt.Errorf("coordinator: aggregate recv failed: %w", err)
		}

		switch tag {
		case transport.TagDone:
			doneWorkers++
			metrics.WorkersDoneTotal.Inc()
		case transport.TagImproved:
			if nd.Next != n {
				return coloring.Node{}, nil, fmt.Errorf("coordinator: IMPROVED from rank %d carries a non-final node, invariant violation", from)
			}
			if nd.TotColors < ub.Get() {
				ub.TrySet(nd.TotColors)
				incumbent = nd
				history = append(history, nd.TotColors)
				log.Info().Int("from", from).Int("tot_colors", nd.TotColors).Msg("accepted improved incumbent")
				metrics.UpperBoundImprovementsTotal.Inc()
				metrics.CurrentUpperBound.Set(float64(nd.TotColors))
				if _, err := tp.BroadcastUint(ctx, 0, uint32(nd.TotColors)); err != nil {
					return coloring.Node{}, nil, fmt.Errorf("coordinator: bound broadcast failed: %w", err)
				}
			}
			// Stale IMPROVED (not strictly better than the current UB) is discarded.
		default:
			return coloring.Node{}, nil, fmt.Errorf("coordinator: unexpected tag %s from rank %d", tag, from)
		}
	}

	if _, err := tp.BroadcastUint(ctx, 0, bound.Sentinel(n)); err != nil {
		return coloring.Node{}, nil, fmt.Errorf("coordinator: sentinel broadcast failed: %w", err)
	}
	return incumbent, history, nil
}

// terminateWithoutWorkers handles the case where the serial seeding
// phase alone proved the optimum. No worker has received anything yet
// and none will start a DFS, but every worker still blocks on its
// initial receive, so the coordinator must still send one message
// (IDLE) to each before the group can unwind, followed by the sentinel
// bound and the barrier so workers' listener goroutines and main loops
// both return cleanly.
func terminateWithoutWorkers(ctx context.Context, tp transport.Transport, n int) error {
	w := tp.Size() - 1
	dummy := coloring.Node{}
	for rank := 1; rank <= w; rank++ {
		if err := tp.SendNode(ctx, dummy, rank, transport.TagIdle); err != nil {
			return fmt.Errorf("coordinator: idle dispatch to rank %d failed: %w", rank, err)
		}
	}
	// Workers that received IDLE still send DONE so the barrier and the
	// termination broadcast line up with every other exit path.
	doneWorkers := 0
	for doneWorkers < w {
		_, tag, from, err := tp.RecvNode(ctx, -1)
		if err != nil {
			return fmt.Errorf("coordinator: collecting DONE after no-parallelism exit failed: %w", err)
		}
		if tag != transport.TagDone {
			return fmt.Errorf("coordinator: expected DONE from rank %d, got %s", from, tag)
		}
		doneWorkers++
	}
	if _, err := tp.BroadcastUint(ctx, 0, bound.Sentinel(n)); err != nil {
		return fmt.Errorf("coordinator: sentinel broadcast failed: %w", err)
	}
	return tp.Barrier(ctx)
}
