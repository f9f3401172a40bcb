// Package tcpnet implements transport.Transport over real TCP
// connections, for running the coordinator and workers as separate OS
// processes instead of chanrpc's in-process goroutines. The process
// group is fixed and star-shaped, matching the protocol's actual
// communication topology: every point-to-point message and every
// broadcast either originates at or targets rank 0, so only rank 0
// needs a connection to every worker; each worker needs exactly one
// connection, to rank 0. Framing is a 4-byte big-endian length prefix
// covering a 1-byte frame kind plus its payload.
package tcpnet

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/leonardoevi/Graph-coloring/internal/coloring"
	"github.com/leonardoevi/Graph-coloring/internal/transport"
)

type frameKind byte

const (
	frameNode frameKind = iota
	frameBroadcastUint
	frameBroadcastBytes
	frameBarrier
)

// conn wraps one TCP connection with the write lock its reader/writer
// pair needs; reads happen only in that peer's dedicated readLoop
// goroutine.
type conn struct {
	nc      net.Conn
	writeMu sync.Mutex
}

func (c *conn) write(kind frameKind, payload []byte) error {
	buf := make([]byte, 4+1+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], uint32(1+len(payload)))
	buf[4] = byte(kind)
	copy(buf[5:], payload)
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.nc.Write(buf)
	return err
}

func readFrame(r io.Reader) (frameKind, []byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return 0, nil, err
	}
	total := binary.BigEndian.Uint32(lenBuf[:])
	if total == 0 {
		return 0, nil, fmt.Errorf("tcpnet: zero-length frame")
	}
	buf := make([]byte, total)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, nil, err
	}
	return frameKind(buf[0]), buf[1:], nil
}

type envelope struct {
	node coloring.Node
	tag  transport.Tag
	from int
}

// proc is this process's Transport endpoint.
type proc struct {
	rank, size int
	n          int // graph size, needed to decode SearchNode payloads

	conns map[int]*conn // conns[r]: connection to rank r (rank 0 has one per worker; a worker has only conns[0])

	nodeInbox chan envelope
	uintCh    chan uint32
	bytesCh   chan []byte

	pendingMu sync.Mutex
	pending   []envelope

	// barrierArrive collects each worker's arrival frame on rank 0;
	// barrierAck delivers rank 0's release frame to a worker.
	barrierArrive chan int
	barrierAck    chan struct{}

	closeOnce sync.Once
	closers   []io.Closer
}

func newProc(rank, size, n int) *proc {
	return &proc{
		rank:          rank,
		size:          size,
		n:             n,
		conns:         make(map[int]*conn),
		nodeInbox:     make(chan envelope, 256),
		uintCh:        make(chan uint32, n+2),
		bytesCh:       make(chan []byte, 1),
		barrierArrive: make(chan int, size),
		barrierAck:    make(chan struct{}, 1),
	}
}

// Listen starts rank 0 (the coordinator): it binds addr and accepts
// exactly numWorkers inbound connections, each announcing its rank with
// a 4-byte handshake immediately after connecting.
func Listen(ctx context.Context, addr string, numWorkers, n int) (transport.Transport, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tcpnet: listen on %s: %w", addr, err)
	}
	p := newProc(0, numWorkers+1, n)
	p.closers = append(p.closers, ln)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for i := 0; i < numWorkers; i++ {
		nc, err := ln.Accept()
		if err != nil {
			return nil, fmt.Errorf("tcpnet: accept: %w", err)
		}
		var hsBuf [4]byte
		if _, err := io.ReadFull(nc, hsBuf[:]); err != nil {
			return nil, fmt.Errorf("tcpnet: reading handshake: %w", err)
		}
		peerRank := int(binary.BigEndian.Uint32(hsBuf[:]))
		if peerRank < 1 || peerRank >= p.size {
			return nil, fmt.Errorf("tcpnet: peer announced out-of-range rank %d", peerRank)
		}
		c := &conn{nc: nc}
		p.conns[peerRank] = c
		p.closers = append(p.closers, nc)
		go p.readLoop(peerRank, c)
	}
	return p, nil
}

// Dial connects a worker (rank in [1,size)) to the coordinator at addr,
// announcing its rank with the 4-byte handshake Listen expects.
func Dial(ctx context.Context, addr string, rank, size, n int) (transport.Transport, error) {
	if rank < 1 || rank >= size {
		return nil, fmt.Errorf("tcpnet: worker rank must be in [1,%d), got %d", size, rank)
	}
	d := net.Dialer{}
	var nc net.Conn
	var err error
	for attempt := 0; attempt < 20; attempt++ {
		nc, err = d.DialContext(ctx, "tcp", addr)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("tcpnet: dialing coordinator at %s: %w", addr, err)
	}

	var hsBuf [4]byte
	binary.BigEndian.PutUint32(hsBuf[:], uint32(rank))
	if _, err := nc.Write(hsBuf[:]); err != nil {
		return nil, fmt.Errorf("tcpnet: writing handshake: %w", err)
	}

	p := newProc(rank, size, n)
	c := &conn{nc: nc}
	p.conns[0] = c
	p.closers = append(p.closers, nc)
	go p.readLoop(0, c)
	return p, nil
}

func (p *proc) readLoop(peerRank int, c *conn) {
	for {
		kind, payload, err := readFrame(c.nc)
		if err != nil {
			return
		}
		switch kind {
		case frameNode:
			if len(payload) < 1 {
				continue
			}
			appTag := transport.Tag(payload[0])
			words, err := decodeUint32s(payload[1:])
			if err != nil {
				continue
			}
			nd, err := transport.UnpackNode(words, p.n)
			if err != nil {
				continue
			}
			p.nodeInbox <- envelope{node: nd, tag: appTag, from: peerRank}
		case frameBroadcastUint:
			if len(payload) != 4 {
				continue
			}
			p.uintCh <- binary.BigEndian.Uint32(payload)
		case frameBroadcastBytes:
			cp := make([]byte, len(payload))
			copy(cp, payload)
			p.bytesCh <- cp
		case frameBarrier:
			if p.rank == 0 {
				p.barrierArrive <- peerRank
			} else {
				p.barrierAck <- struct{}{}
			}
		}
	}
}

func decodeUint32s(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("tcpnet: payload length %d not a multiple of 4", len(b))
	}
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(b[i*4 : i*4+4])
	}
	return out, nil
}

func encodeUint32s(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(out[i*4:i*4+4], w)
	}
	return out
}

func (p *proc) Rank() int { return p.rank }
func (p *proc) Size() int { return p.size }

func (p *proc) connTo(dest int) (*conn, error) {
	c, ok := p.conns[dest]
	if !ok {
		return nil, fmt.Errorf("tcpnet: no connection to rank %d", dest)
	}
	return c, nil
}

func (p *proc) SendNode(ctx context.Context, nd coloring.Node, dest int, tag transport.Tag) error {
	c, err := p.connTo(dest)
	if err != nil {
		return err
	}
	if len(nd.Color) != p.n {
		// Placeholder nodes (IDLE, DONE) still go out as n+2 words, the
		// only payload length readLoop on the other side accepts.
		padded := coloring.Empty(p.n)
		copy(padded.Color, nd.Color)
		padded.TotColors, padded.Next = nd.TotColors, nd.Next
		nd = padded
	}
	words := transport.PackNode(nd)
	payload := append([]byte{byte(tag)}, encodeUint32s(words)...)
	return c.write(frameNode, payload)
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
		case env := <-p.nodeInbox:
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
	if p.rank == root {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, value)
		for r := 1; r < p.size; r++ {
			c, err := p.connTo(r)
			if err != nil {
				return 0, err
			}
			if err := c.write(frameBroadcastUint, buf); err != nil {
				return 0, fmt.Errorf("tcpnet: broadcast to rank %d: %w", r, err)
			}
		}
		return value, nil
	}
	select {
	case v := <-p.uintCh:
		return v, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (p *proc) BroadcastBytes(ctx context.Context, root int, buf []byte) ([]byte, error) {
	if p.rank == root {
		for r := 1; r < p.size; r++ {
			c, err := p.connTo(r)
			if err != nil {
				return nil, err
			}
			if err := c.write(frameBroadcastBytes, buf); err != nil {
				return nil, fmt.Errorf("tcpnet: broadcast to rank %d: %w", r, err)
			}
		}
		return buf, nil
	}
	select {
	case v := <-p.bytesCh:
		return v, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Barrier implements the zero-length control-frame barrier: every
// worker sends one barrier frame to rank 0 and then waits for rank 0's
// echo; rank 0 collects one frame from every worker, then echoes it
// back to all of them.
func (p *proc) Barrier(ctx context.Context) error {
	if p.rank == 0 {
		seen := make(map[int]bool, p.size-1)
		for len(seen) < p.size-1 {
			select {
			case r := <-p.barrierArrive:
				seen[r] = true
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		for r := 1; r < p.size; r++ {
			c, err := p.connTo(r)
			if err != nil {
				return err
			}
			if err := c.write(frameBarrier, nil); err != nil {
				return fmt.Errorf("tcpnet: barrier release to rank %d: %w", r, err)
			}
		}
		return nil
	}

	c, err := p.connTo(0)
	if err != nil {
		return err
	}
	if err := c.write(frameBarrier, nil); err != nil {
		return fmt.Errorf("tcpnet: barrier arrival: %w", err)
	}
	select {
	case <-p.barrierAck:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *proc) Close() error {
	p.closeOnce.Do(func() {
		for _, c := range p.closers {
			_ = c.Close()
		}
	})
	return nil
}
