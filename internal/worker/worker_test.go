package worker_test

import (
	"context"
	"testing"

	"github.com/leonardoevi/Graph-coloring/internal/coloring"
	"github.com/leonardoevi/Graph-coloring/internal/graph"
	"github.com/leonardoevi/Graph-coloring/internal/transport"
	"github.com/leonardoevi/Graph-coloring/internal/transport/chanrpc"
	"github.com/leonardoevi/Graph-coloring/internal/worker"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRunExploresTriangleToOptimum(t *testing.T) {
	grp, err := chanrpc.NewGroup(2, 8, 2)
	require.NoError(t, err)
	ctx := context.Background()
	root := grp.Endpoint(0)

	g, err := graph.New(3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	require.NoError(t, err)

	resultCh := make(chan worker.Result, 1)
	errCh := make(chan error, 1)
	go func() {
		res, err := worker.Run(ctx, grp.Endpoint(1), 3, zerolog.Nop())
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- res
	}()

	_, err = root.BroadcastBytes(ctx, 0, transport.PackMatrix(g.Matrix()))
	require.NoError(t, err)
	require.NoError(t, root.SendNode(ctx, coloring.Empty(3), 1, transport.TagInitial))

	nd, tag, from, err := root.RecvNode(ctx, -1)
	require.NoError(t, err)
	require.Equal(t, transport.TagImproved, tag)
	require.Equal(t, 1, from)
	require.Equal(t, 3, nd.TotColors)

	_, err = root.BroadcastUint(ctx, 0, 3)
	require.NoError(t, err)

	_, tag, from, err = root.RecvNode(ctx, -1)
	require.NoError(t, err)
	require.Equal(t, transport.TagDone, tag)
	require.Equal(t, 1, from)

	_, err = root.BroadcastUint(ctx, 0, 5) // Sentinel(3) == 5
	require.NoError(t, err)

	require.NoError(t, root.Barrier(ctx))

	select {
	case res := <-resultCh:
		require.True(t, res.HasIncumbent)
		require.Equal(t, 1, res.ImprovedSent)
		require.Equal(t, 3, res.Incumbent.TotColors)
	case err := <-errCh:
		t.Fatalf("worker.Run failed: %v", err)
	}
}

func TestRunWithIdleSkipsSearch(t *testing.T) {
	grp, err := chanrpc.NewGroup(2, 4, 2)
	require.NoError(t, err)
	ctx := context.Background()
	root := grp.Endpoint(0)

	g, err := graph.New(2, nil)
	require.NoError(t, err)

	resultCh := make(chan worker.Result, 1)
	errCh := make(chan error, 1)
	go func() {
		res, err := worker.Run(ctx, grp.Endpoint(1), 2, zerolog.Nop())
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- res
	}()

	_, err = root.BroadcastBytes(ctx, 0, transport.PackMatrix(g.Matrix()))
	require.NoError(t, err)
	require.NoError(t, root.SendNode(ctx, coloring.Empty(2), 1, transport.TagIdle))

	_, tag, from, err := root.RecvNode(ctx, -1)
	require.NoError(t, err)
	require.Equal(t, transport.TagDone, tag)
	require.Equal(t, 1, from)

	_, err = root.BroadcastUint(ctx, 0, 4) // Sentinel(2) == 4
	require.NoError(t, err)
	require.NoError(t, root.Barrier(ctx))

	select {
	case res := <-resultCh:
		require.False(t, res.HasIncumbent)
		require.Equal(t, 0, res.ImprovedSent)
	case err := <-errCh:
		t.Fatalf("worker.Run failed: %v", err)
	}
}
