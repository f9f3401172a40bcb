// Package graph defines the immutable adjacency relation shared by every
// SearchNode on every process: a fixed-size, symmetric, loop-free boolean
// relation over [0,n). It has no notion of weights, direction, or vertex
// identifiers beyond their integer index — the engine's branching rule
// only ever asks "are u and v adjacent?".
package graph

import "fmt"

// Graph is a fixed-size symmetric adjacency relation over [0,n).
// Once built it is never mutated, so it can be shared read-only across
// goroutines (or processes, once broadcast) without locking.
type Graph struct {
	n   int
	adj []bool // row-major, n*n; adj[i*n+j] == adj[j*n+i], adj[i*n+i] == false
}

// New builds a Graph of size n from a list of undirected edges. Edge
// endpoints must be in [0,n); self-loops are rejected since a self-loop
// could never be properly colored.
func New(n int, edges [][2]int) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("graph: negative size %d", n)
	}
	g := &Graph{n: n, adj: make([]bool, n*n)}
	for _, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, fmt.Errorf("graph: edge (%d,%d) out of range [0,%d)", u, v, n)
		}
		if u == v {
			return nil, fmt.Errorf("graph: self-loop at vertex %d", u)
		}
		g.adj[u*n+v] = true
		g.adj[v*n+u] = true
	}
	return g, nil
}

// FromMatrix builds a Graph directly from a packed row-major boolean
// matrix, as received over the wire (§6). It does not validate symmetry;
// callers that need the invariant checked should use NewSymmetric.
func FromMatrix(n int, adj []bool) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("graph: negative size %d", n)
	}
	if len(adj) != n*n {
		return nil, fmt.Errorf("graph: matrix length %d does not match n*n=%d", len(adj), n*n)
	}
	return &Graph{n: n, adj: adj}, nil
}

// NewSymmetric builds a Graph from a packed row-major boolean matrix,
// the same as FromMatrix, but rejects a matrix that is not symmetric or
// carries a self-loop on its diagonal. internal/worker uses this for
// the adjacency matrix it receives over the wire, since a malformed
// broadcast there is a protocol bug rather than trusted input.
func NewSymmetric(n int, adj []bool) (*Graph, error) {
	g, err := FromMatrix(n, adj)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if g.adj[i*n+i] {
			return nil, fmt.Errorf("graph: self-loop at vertex %d", i)
		}
		for j := i + 1; j < n; j++ {
			if g.adj[i*n+j] != g.adj[j*n+i] {
				return nil, fmt.Errorf("graph: matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
	return g, nil
}

// Size returns n, the number of vertices.
func (g *Graph) Size() int { return g.n }

// Adj reports whether i and j are adjacent. It does not check i and j
// against [0,n), trusting internal callers that always iterate within
// that range: an out-of-range pair panics only when i*n+j falls outside
// the matrix, and otherwise reads an unrelated entry.
func (g *Graph) Adj(i, j int) bool {
	return g.adj[i*g.n+j]
}

// Matrix returns the packed row-major boolean adjacency matrix, in the
// exact layout required by the broadcast payload of §6: byte i*n+j is
// nonzero iff (i,j) is an edge. The returned slice is a copy; mutating it
// does not affect g.
func (g *Graph) Matrix() []bool {
	out := make([]bool, len(g.adj))
	copy(out, g.adj)
	return out
}

// Edges returns the set of edges {i,j} with i<j, in ascending order. Used
// by internal/dimacs.Write when writing a Graph back to DIMACS text, and
// by tests asserting edge-set equality.
func (g *Graph) Edges() [][2]int {
	var out [][2]int
	for i := 0; i < g.n; i++ {
		for j := i + 1; j < g.n; j++ {
			if g.adj[i*g.n+j] {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}
