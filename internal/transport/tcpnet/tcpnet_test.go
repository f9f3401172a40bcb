package tcpnet_test

import (
	"context"
	"testing"
	"time"

	"github.com/leonardoevi/Graph-coloring/internal/coloring"
	"github.com/leonardoevi/Graph-coloring/internal/transport"
	"github.com/leonardoevi/Graph-coloring/internal/transport/tcpnet"
	"github.com/stretchr/testify/require"
)

// buildGroup starts a coordinator listener and connects numWorkers
// workers to it over real loopback TCP connections, returning every
// endpoint indexed by rank.
func buildGroup(t *testing.T, addr string, numWorkers, n int) []transport.Transport {
	t.Helper()
	ctx := context.Background()

	coordCh := make(chan transport.Transport, 1)
	coordErrCh := make(chan error, 1)
	go func() {
		tp, err := tcpnet.Listen(ctx, addr, numWorkers, n)
		if err != nil {
			coordErrCh <- err
			return
		}
		coordCh <- tp
	}()

	eps := make([]transport.Transport, numWorkers+1)
	for r := 1; r <= numWorkers; r++ {
		r := r
		tp, err := tcpnet.Dial(ctx, addr, r, numWorkers+1, n)
		require.NoError(t, err)
		eps[r] = tp
	}

	select {
	case tp := <-coordCh:
		eps[0] = tp
	case err := <-coordErrCh:
		t.Fatalf("coordinator listen failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for coordinator to accept all workers")
	}
	return eps
}

func TestSendRecvOverTCP(t *testing.T) {
	eps := buildGroup(t, "127.0.0.1:18851", 2, 4)
	defer func() {
		for _, ep := range eps {
			ep.Close()
		}
	}()
	ctx := context.Background()

	nd := coloring.Node{Color: []int{1, 2, 0, 1}, TotColors: 3, Next: 2}
	require.NoError(t, eps[0].SendNode(ctx, nd, 1, transport.TagInitial))

	got, tag, from, err := eps[1].RecvNode(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, transport.TagInitial, tag)
	require.Equal(t, 0, from)
	require.Equal(t, nd.TotColors, got.TotColors)
	require.Equal(t, nd.Color, got.Color)
}

func TestRecvAnySourceOverTCP(t *testing.T) {
	eps := buildGroup(t, "127.0.0.1:18852", 2, 3)
	defer func() {
		for _, ep := range eps {
			ep.Close()
		}
	}()
	ctx := context.Background()

	require.NoError(t, eps[2].SendNode(ctx, coloring.Node{TotColors: 9}, 0, transport.TagDone))
	require.NoError(t, eps[1].SendNode(ctx, coloring.Node{TotColors: 1}, 0, transport.TagDone))

	seen := map[int]bool{}
	for i := 0; i < 2; i++ {
		_, _, from, err := eps[0].RecvNode(ctx, -1)
		require.NoError(t, err)
		seen[from] = true
	}
	require.True(t, seen[1])
	require.True(t, seen[2])
}

func TestBroadcastUintOverTCP(t *testing.T) {
	eps := buildGroup(t, "127.0.0.1:18853", 3, 4)
	defer func() {
		for _, ep := range eps {
			ep.Close()
		}
	}()
	ctx := context.Background()

	done := make(chan uint32, 2)
	for r := 1; r <= 3; r++ {
		r := r
		go func() {
			v, err := eps[r].BroadcastUint(ctx, 0, 0)
			require.NoError(t, err)
			done <- v
		}()
	}

	v, err := eps[0].BroadcastUint(ctx, 0, 7)
	require.NoError(t, err)
	require.Equal(t, uint32(7), v)

	for i := 0; i < 3; i++ {
		select {
		case got := <-done:
			require.Equal(t, uint32(7), got)
		case <-time.After(2 * time.Second):
			t.Fatal("broadcast not received by every worker")
		}
	}
}

func TestBroadcastBytesOverTCP(t *testing.T) {
	eps := buildGroup(t, "127.0.0.1:18854", 1, 3)
	defer func() {
		for _, ep := range eps {
			ep.Close()
		}
	}()
	ctx := context.Background()

	payload := []byte{0, 1, 1, 0, 1, 0, 0, 0, 0}
	gotCh := make(chan []byte, 1)
	go func() {
		v, err := eps[1].BroadcastBytes(ctx, 0, nil)
		require.NoError(t, err)
		gotCh <- v
	}()

	_, err := eps[0].BroadcastBytes(ctx, 0, payload)
	require.NoError(t, err)

	select {
	case got := <-gotCh:
		require.Equal(t, payload, got)
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast bytes not received")
	}
}

func TestBarrierOverTCP(t *testing.T) {
	eps := buildGroup(t, "127.0.0.1:18855", 3, 2)
	defer func() {
		for _, ep := range eps {
			ep.Close()
		}
	}()
	ctx := context.Background()

	done := make(chan struct{}, 4)
	for r := 0; r < 4; r++ {
		r := r
		go func() {
			require.NoError(t, eps[r].Barrier(ctx))
			done <- struct{}{}
		}()
	}

	for i := 0; i < 4; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("barrier did not release all participants")
		}
	}
}
