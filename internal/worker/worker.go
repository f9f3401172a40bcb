// Package worker implements the non-coordinator side of the search: a
// process that receives its subtree root (or an IDLE placeholder),
// explores it depth-first against the live shared upper bound, reports
// strict improvements, and joins the termination barrier once its
// stack is empty.
package worker

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

// Result is the outcome of one worker's run.
type Result struct {
	Incumbent     coloring.Node // best final node this worker found, if any
	HasIncumbent  bool
	ImprovedSent  int // number of IMPROVED messages this worker sent (0 or more)
	NodesExpanded int // search-tree nodes this worker called Expand on
}

// Run executes the full worker lifecycle on tp, whose rank must not be
// 0. n is the graph's vertex count, known identically by every process
// before the run starts. Rank 0, the coordinator, is always the root
// for broadcasts and point-to-point sends in this design.
func Run(ctx context.Context, tp transport.Transport, n int, log zerolog.Logger) (Result, error) {
	rank := tp.Rank()
	if rank == 0 {
		return Result{}, fmt.Errorf("worker: must not run on rank 0")
	}

	matBytes, err := tp.BroadcastBytes(ctx, 0, nil)
	if err != nil {
		return Result{}, fmt.Errorf("worker %d: graph broadcast recv failed: %w", rank, err)
	}
	g, err := graph.NewSymmetric(n, transport.UnpackMatrix(matBytes))
	if err != nil {
		return Result{}, fmt.Errorf("worker %d: malformed broadcast graph: %w", rank, err)
	}

	b := bound.New(n)
	listenerDone := make(chan error, 1)
	go func() {
		listenerDone <- bound.RunWorkerListener(ctx, tp, 0, n, b)
	}()

	init, tag, from, err := tp.RecvNode(ctx, 0)
	if err != nil {
		return Result{}, fmt.Errorf("worker %d: initial recv failed: %w", rank, err)
	}
	if from != 0 {
		return Result{}, fmt.Errorf("worker %d: initial message came from rank %d, want coordinator", rank, from)
	}

	var res Result
	switch tag {
	case transport.TagInitial:
		res, err = dfs(ctx, tp, g, b, init, rank, log)
		if err != nil {
			return Result{}, err
		}
	case transport.TagIdle:
		// No subtree assigned; this worker has nothing to search.
	default:
		return Result{}, fmt.Errorf("worker %d: unexpected initial tag %s", rank, tag)
	}

	if err := tp.SendNode(ctx, coloring.Node{}, 0, transport.TagDone); err != nil {
		return Result{}, fmt.Errorf("worker %d: sending DONE failed: %w", rank, err)
	}
	if err := tp.Barrier(ctx); err != nil {
		return Result{}, fmt.Errorf("worker %d: barrier failed: %w", rank, err)
	}
	if err := <-listenerDone; err != nil {
		return Result{}, fmt.Errorf("worker %d: bound listener failed: %w", rank, err)
	}

	log.Info().Int("rank", rank).Int("improved_sent", res.ImprovedSent).Msg("process completed")
	return res, nil
}

// dfs runs the worker's depth-first exploration of the subtree rooted
// at root, pruning against b and reporting every strict improvement. It
// returns once the subtree is exhausted.
//
// b is written only by this process's bound listener goroutine, which
// applies the coordinator's broadcasts; dfs itself only ever reads it.
// A final node strictly better than the last value dfs has read is
// reported unconditionally — the coordinator's aggregation loop is the
// sole arbiter of whether a reported value is actually an improvement,
// so a report here that turns out stale by the time it arrives is
// simply discarded there, not a correctness problem.
func dfs(ctx context.Context, tp transport.Transport, g *graph.Graph, b *bound.Bound, root coloring.Node, rank int, log zerolog.Logger) (Result, error) {
	var res Result
	n := g.Size()
	stack := []coloring.Node{root}
	lastKnownUB := b.Get()

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if u.IsFinal(n) {
			if u.TotColors < lastKnownUB {
				lastKnownUB = u.TotColors
				res.Incumbent = u
				res.HasIncumbent = true
				res.ImprovedSent++
				log.Debug().Int("rank", rank).Int("tot_colors", u.TotColors).Msg("found improved incumbent")
				if err := tp.SendNode(ctx, u, 0, transport.TagImproved); err != nil {
					return Result{}, fmt.Errorf("worker %d: sending IMPROVED failed: %w", rank, err)
				}
			}
			continue
		}
		if ub := b.Get(); u.TotColors >= ub {
			continue
		} else if ub < lastKnownUB {
			lastKnownUB = ub
		}

		res.NodesExpanded++
		metrics.NodesExpandedTotal.Inc()
		children := u.Expand(g, b.Get())
		// Pushed in reverse so the ascending-color child (smallest
		// existing color first) is popped and explored first.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return res, nil
}
