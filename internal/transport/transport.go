// Package transport defines the message-passing contract the engine
// needs and the wire encoding of SearchNodes and graphs. Two
// implementations exist: chanrpc (in-process, goroutines as processes)
// and tcpnet (real processes over TCP). Neither internal/coordinator
// nor internal/worker imports either implementation directly — both
// depend only on the Transport interface here.
package transport

import (
	"context"
	"fmt"

	"github.com/leonardoevi/Graph-coloring/internal/coloring"
)

// Tag identifies the purpose of a point-to-point message.
type Tag uint8

const (
	// TagInitial: coordinator -> worker, "this is your subtree root".
	TagInitial Tag = iota + 1
	// TagIdle: coordinator -> worker, "no subtree for you; stand by".
	TagIdle
	// TagImproved: worker -> coordinator, "here is a strictly better coloring".
	TagImproved
	// TagDone: worker -> coordinator, "my subtree is exhausted".
	TagDone
)

func (t Tag) String() string {
	switch t {
	case TagInitial:
		return "INITIAL"
	case TagIdle:
		return "IDLE"
	case TagImproved:
		return "IMPROVED"
	case TagDone:
		return "DONE"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Transport is the message-passing substrate the engine assumes: typed
// send/receive of a SearchNode, one-to-all broadcast of an unsigned
// integer or a raw byte payload, and a barrier. Point-to-point sends are
// FIFO per (source,dest) pair; broadcasts from the same root are
// observed in the same order by every participant.
//
// A Transport is used by exactly two goroutines per process (the main
// loop and the bound listener) — implementations must support
// concurrent calls to different methods from different goroutines on
// the same process without the caller needing extra locking.
type Transport interface {
	// Rank returns this process's rank in [0,Size()).
	Rank() int
	// Size returns the total number of processes P.
	Size() int

	// SendNode sends nd to dest with the given tag. Blocks until accepted
	// by the transport (not necessarily until dest receives it).
	SendNode(ctx context.Context, nd coloring.Node, dest int, tag Tag) error
	// RecvNode blocks until a message arrives from src (or from any
	// source if src < 0) and returns the node, its tag, and the actual
	// sender rank.
	RecvNode(ctx context.Context, src int) (nd coloring.Node, tag Tag, from int, err error)

	// BroadcastUint performs a one-to-all broadcast of value from root.
	// Every process, including root, must call this the same number of
	// times in the same order; it blocks until the collective completes.
	BroadcastUint(ctx context.Context, root int, value uint32) (uint32, error)
	// BroadcastBytes is BroadcastUint's counterpart for the one-time
	// graph payload.
	BroadcastBytes(ctx context.Context, root int, buf []byte) ([]byte, error)

	// Barrier blocks until every process in the group has called it.
	Barrier(ctx context.Context) error

	// Close releases any resources (connections, channels) held by this
	// process's endpoint. Safe to call once after the process is done.
	Close() error
}

// PackNode encodes nd as n+2 unsigned 32-bit integers: color[0..n),
// tot_colors, next.
func PackNode(nd coloring.Node) []uint32 {
	buf := make([]uint32, len(nd.Color)+2)
	for i, c := range nd.Color {
		buf[i] = uint32(c)
	}
	buf[len(nd.Color)] = uint32(nd.TotColors)
	buf[len(nd.Color)+1] = uint32(nd.Next)
	return buf
}

// UnpackNode is PackNode's inverse. n is the graph size, used to
// validate buf's length.
func UnpackNode(buf []uint32, n int) (coloring.Node, error) {
	if len(buf) != n+2 {
		return coloring.Node{}, fmt.Errorf("transport: node payload has %d words, want %d", len(buf), n+2)
	}
	color := make([]int, n)
	for i := 0; i < n; i++ {
		color[i] = int(buf[i])
	}
	return coloring.Node{
		Color:     color,
		TotColors: int(buf[n]),
		Next:      int(buf[n+1]),
	}, nil
}

// PackMatrix encodes a packed boolean adjacency matrix (n*n bools, as
// returned by graph.Graph.Matrix) into a byte payload: byte i*n+j is
// nonzero iff (i,j) is an edge.
func PackMatrix(adj []bool) []byte {
	buf := make([]byte, len(adj))
	for i, b := range adj {
		if b {
			buf[i] = 1
		}
	}
	return buf
}

// UnpackMatrix is PackMatrix's inverse.
func UnpackMatrix(buf []byte) []bool {
	out := make([]bool, len(buf))
	for i, b := range buf {
		out[i] = b != 0
	}
	return out
}
