// Package chanrpc implements transport.Transport in-process, using Go
// channels as the message-passing substrate: each "process" is a
// goroutine, point-to-point messages travel over per-destination inbox
// channels, and broadcasts fan out over per-(root,follower) channels.
// This is the primary, exhaustively tested transport: it lets
// internal/engine run a whole coordinator+workers job inside one test
// binary, which is how end-to-end scenarios are verified without
// spawning real OS processes.
package chanrpc

import (
	"context"
	"fmt"
	"sync"

	"github.com/leonardoevi/Graph-coloring/internal/coloring"
	"github.com/leonardoevi/Graph-coloring/internal/transport"
)

// envelope is one point-to-point message in flight.
type envelope struct {
	node coloring.Node
	tag  transport.Tag
	from int
}

// Group is the shared state behind every process endpoint created by
// NewGroup. Callers never use Group directly; they call Endpoint(rank)
// to get the transport.Transport view for that rank.
type Group struct {
	size int

	inbox []chan envelope // inbox[r]: messages destined for rank r

	bcastMu sync.Mutex
	uintFan map[int][]chan uint32 // root -> per-rank fan-out channel (uintFan[root][r])
	byteFan map[int][]chan []byte

	boundCap int // buffer capacity for each uint broadcast fan-out channel
	byteCap  int // buffer capacity for each byte broadcast fan-out channel

	barrierMu      sync.Mutex
	barrierCond    *sync.Cond
	barrierArrived int
	barrierGen     int
}

// NewGroup builds a Group of size processes. boundCap bounds how many
// outstanding BroadcastUint values a root may publish before a slow
// follower must catch up (the engine publishes at most n+2 values over a
// run, once per distinct UB improvement plus the termination sentinel),
// and byteCap bounds outstanding BroadcastBytes payloads (the engine
// publishes exactly one: the graph).
func NewGroup(size, boundCap, byteCap int) (*Group, error) {
	if size < 1 {
		return nil, fmt.Errorf("chanrpc: group size must be >= 1, got %d", size)
	}
	g := &Group{
		size:     size,
		inbox:    make([]chan envelope, size),
		uintFan:  make(map[int][]chan uint32),
		byteFan:  make(map[int][]chan []byte),
		boundCap: boundCap,
		byteCap:  byteCap,
	}
	g.barrierCond = sync.NewCond(&g.barrierMu)
	for r := 0; r < size; r++ {
		g.inbox[r] = make(chan envelope, 256)
	}
	return g, nil
}

func (g *Group) uintFanOut(root int) []chan uint32 {
	g.bcastMu.Lock()
	defer g.bcastMu.Unlock()
	if fan, ok := g.uintFan[root]; ok {
		return fan
	}
	fan := make([]chan uint32, g.size)
	for r := 0; r < g.size; r++ {
		fan[r] = make(chan uint32, g.boundCap)
	}
	g.uintFan[root] = fan
	return fan
}

func (g *Group) byteFanOut(root int) []chan []byte {
	g.bcastMu.Lock()
	defer g.bcastMu.Unlock()
	if fan, ok := g.byteFan[root]; ok {
		return fan
	}
	fan := make([]chan []byte, g.size)
	for r := 0; r < g.size; r++ {
		fan[r] = make(chan []byte, g.byteCap)
	}
	g.byteFan[root] = fan
	return fan
}

// Endpoint returns the transport.Transport view of the group for rank.
func (g *Group) Endpoint(rank int) transport.Transport {
	return &proc{group: g, rank: rank}
}

// proc is one process's (goroutine's) view of a Group.
type proc struct {
	group *Group
	rank  int

	pendingMu sync.Mutex
	pending   []envelope // held-back messages for a specific-source RecvNode
}

func (p *proc) Rank() int { return p.rank }
func (p *proc) Size() int { return p.group.size }

func (p *proc) SendNode(ctx context.Context, nd coloring.Node, dest int, tag transport.Tag) error {
	if dest < 0 || dest >= p.group.size {
		return fmt.Errorf("chanrpc: send to out-of-range rank %d", dest)
	}
	env := envelope{node: nd.Clone(), tag: tag, from: p.rank}
	select {
	case p.group.inbox[dest] <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *proc) RecvNode(ctx context.Context, src int) (coloring.Node, transport.Tag, int, error) {
	p.pendingMu.Lock()
	for i, env := range p.pending {
		if src < 0 || env.from == src {
			p.pending = append(p.pending[:i], p.pending[i+1:]...)
			p.pendingMu.Unlock()
			return env.node, env.tag, env.from, nil
		}
	}
	p.pendingMu.Unlock()

	for {
		select {
		case env := <-p.group.inbox[p.rank]:
			if src < 0 || env.from == src {
				return env.node, env.tag, env.from, nil
			}
			p.pendingMu.Lock()
			p.pending = append(p.pending, env)
			p.pendingMu.Unlock()
		case <-ctx.Done():
			return coloring.Node{}, 0, 0, ctx.Err()
		}
	}
}

func (p *proc) BroadcastUint(ctx context.Context, root int, value uint32) (uint32, error) {
	fan := p.group.uintFanOut(root)
	if p.rank == root {
		for r := 0; r < p.group.size; r++ {
			if r == root {
				continue
			}
			select {
			case fan[r] <- value:
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}
		return value, nil
	}
	select {
	case v := <-fan[p.rank]:
		return v, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (p *proc) BroadcastBytes(ctx context.Context, root int, buf []byte) ([]byte, error) {
	fan := p.group.byteFanOut(root)
	if p.rank == root {
		cp := make([]byte, len(buf))
		copy(cp, buf)
		for r := 0; r < p.group.size; r++ {
			if r == root {
				continue
			}
			select {
			case fan[r] <- cp:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return cp, nil
	}
	select {
	case v := <-fan[p.rank]:
		return v, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *proc) Barrier(ctx context.Context) error {
	g := p.group
	g.barrierMu.Lock()
	gen := g.barrierGen
	g.barrierArrived++
	if g.barrierArrived == g.size {
		g.barrierArrived = 0
		g.barrierGen++
		g.barrierCond.Broadcast()
		g.barrierMu.Unlock()
		return nil
	}

	done := make(chan struct{})
	go func() {
		g.barrierMu.Lock()
		for g.barrierGen == gen {
			g.barrierCond.Wait()
		}
		g.barrierMu.Unlock()
		close(done)
	}()
	g.barrierMu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *proc) Close() error { return nil }
