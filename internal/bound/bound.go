// Package bound implements the shared upper bound UB: a single
// process-wide value, written only by one listener goroutine per
// process, read via atomic loads by that process's search loop. It also
// carries the reserved sentinel value that terminates every worker's
// listener loop once the coordinator has seen all DONE messages.
package bound

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/leonardoevi/Graph-coloring/internal/transport"
)

// Sentinel returns the distinguished value that terminates the bound
// broadcast loop: strictly larger than n so it can never collide with a
// feasible color count. n+2 is used as the reserved constant.
func Sentinel(n int) uint32 {
	return uint32(n) + 2
}

// Bound is a process-wide, monotonically non-increasing upper bound on
// the chromatic number, safe to read from any goroutine and written from
// exactly one (the bound listener).
type Bound struct {
	v int32
}

// New initializes UB to n+1: any feasible coloring of an n-vertex graph
// uses at most n colors, so n+1 is a valid, always-improvable starting
// bound.
func New(n int) *Bound {
	b := &Bound{}
	atomic.StoreInt32(&b.v, int32(n+1))
	return b
}

// Get performs an atomic, relaxed-ordering read. Safe to call from the
// main search loop concurrently with the listener's writes; a stale read
// only causes extra, still-correct work.
func (b *Bound) Get() int {
	return int(atomic.LoadInt32(&b.v))
}

// TrySet stores newVal if it is strictly less than the current value,
// preserving UB's monotonic non-increasing invariant. Returns whether the
// store happened. Must only be called by the owning listener goroutine.
func (b *Bound) TrySet(newVal int) bool {
	for {
		cur := atomic.LoadInt32(&b.v)
		if int32(newVal) >= cur {
			return false
		}
		if atomic.CompareAndSwapInt32(&b.v, cur, int32(newVal)) {
			return true
		}
	}
}

// RunWorkerListener is the worker-side half of the bound channel: it
// blocks on the one-to-all broadcast of UB from root forever, applying
// any strictly-improving value to b, until it receives the sentinel, at
// which point it returns nil. Every loop iteration issues exactly one
// BroadcastUint call, matching the coordinator's obligation to issue
// one broadcast per improvement plus exactly one more (the sentinel) —
// the deadlock-avoidance argument this protocol depends on.
func RunWorkerListener(ctx context.Context, tp transport.Transport, root int, n int, b *Bound) error {
	sentinel := Sentinel(n)
	for {
		v, err := tp.BroadcastUint(ctx, root, 0)
		if err != nil {
			return fmt.Errorf("bound: listener broadcast recv failed: %w", err)
		}
		if v == sentinel {
			return nil
		}
		b.TrySet(int(v))
	}
}
