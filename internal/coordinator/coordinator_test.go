package coordinator_test

import (
	"context"
	"testing"

	"github.com/leonardoevi/Graph-coloring/internal/coloring"
	"github.com/leonardoevi/Graph-coloring/internal/coordinator"
	"github.com/leonardoevi/Graph-coloring/internal/graph"
	"github.com/leonardoevi/Graph-coloring/internal/transport"
	"github.com/leonardoevi/Graph-coloring/internal/transport/chanrpc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRunNoParallelismOnTriangleWithOneWorker(t *testing.T) {
	// K3 needs at least 3 colors; with a single worker and a frontier
	// that would exceed 1 node as soon as Phase A branches, the exact
	// tree for a triangle is small enough that Phase A proves the
	// optimum serially regardless (no node ever has more than 1 child:
	// on a fully connected triple every already-used color is forbidden,
	// leaving only the new-color branch).
	grp, err := chanrpc.NewGroup(2, 8, 2)
	require.NoError(t, err)
	ctx := context.Background()

	g, err := graph.New(3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	require.NoError(t, err)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		ep := grp.Endpoint(1)
		_, err := ep.BroadcastBytes(ctx, 0, nil)
		require.NoError(t, err)
		_, tag, _, err := ep.RecvNode(ctx, 0)
		require.NoError(t, err)
		require.Equal(t, transport.TagIdle, tag)
		require.NoError(t, ep.SendNode(ctx, coloring.Empty(3), 0, transport.TagDone))
		for {
			v, err := ep.BroadcastUint(ctx, 0, 0)
			require.NoError(t, err)
			if v >= 5 {
				break
			}
		}
		require.NoError(t, ep.Barrier(ctx))
	}()

	res, err := coordinator.Run(ctx, grp.Endpoint(0), g, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, res.NoParallelism)
	require.Equal(t, 3, res.Incumbent.TotColors)
	require.True(t, res.Incumbent.Proper(g))
	<-workerDone
}

func TestRunRejectsNonZeroRank(t *testing.T) {
	grp, err := chanrpc.NewGroup(2, 4, 2)
	require.NoError(t, err)
	g, err := graph.New(1, nil)
	require.NoError(t, err)
	_, err = coordinator.Run(context.Background(), grp.Endpoint(1), g, zerolog.Nop())
	require.Error(t, err)
}
