// Package coloring implements SearchNode: a partial vertex coloring and
// the symmetry-breaking branching rule used to expand it. It depends
// only on internal/graph and has no notion of processes, transport, or
// the shared upper bound beyond the single integer Expand is given.
package coloring

import (
	"fmt"

	"github.com/leonardoevi/Graph-coloring/internal/graph"
)

// Node is a partial coloring of a Graph's vertices 0..n-1, colored in
// that fixed order. Color 0 means "unassigned"; assigned colors run
// 1..TotColors. Node is a value type: Expand never mutates the receiver,
// it only produces new Nodes.
type Node struct {
	Color     []int // Color[i] in [1,TotColors] for i<Next, else 0
	TotColors int   // max(Color[0:Next]), or 0 if Next == 0
	Next      int   // count of assigned vertices == index of the next vertex to color
}

// Empty returns the root Node for a graph of size n: nothing assigned.
func Empty(n int) Node {
	return Node{Color: make([]int, n), TotColors: 0, Next: 0}
}

// IsFinal reports whether every vertex has been colored.
func (nd Node) IsFinal(n int) bool {
	return nd.Next == n
}

// Clone returns a deep copy, so callers can freely mutate the copy's
// Color slice without aliasing the receiver's backing array.
func (nd Node) Clone() Node {
	c := make([]int, len(nd.Color))
	copy(c, nd.Color)
	return Node{Color: c, TotColors: nd.TotColors, Next: nd.Next}
}

// Expand produces the ordered list of children of a non-final node under
// the symmetry-breaking branching rule:
//
//  1. Let k = TotColors. Compute the forbidden set F = colors already
//     used by a colored neighbor of vertex nd.Next.
//  2. For each color c in [1,k] \ F, ascending, emit a child with
//     Color[Next]=c, TotColors unchanged, Next+1.
//  3. If k+1 <= ub-1 (a fresh color could still beat the live bound),
//     additionally emit one child with Color[Next]=k+1, TotColors=k+1.
//
// ub is the live upper bound read by the caller; Expand takes it as a
// plain argument rather than reading any shared state, keeping this
// package free of concurrency concerns. Expand never fails; an empty
// result means every branch was pruned or forbidden.
func (nd Node) Expand(g *graph.Graph, ub int) []Node {
	if nd.IsFinal(g.Size()) {
		return nil
	}

	next := nd.Next
	k := nd.TotColors

	forbidden := make([]bool, k+1) // forbidden[c] for c in [1,k]
	for j := 0; j < next; j++ {
		if g.Adj(next, j) {
			c := nd.Color[j]
			if c >= 1 && c <= k {
				forbidden[c] = true
			}
		}
	}

	children := make([]Node, 0, k+1)
	for c := 1; c <= k; c++ {
		if forbidden[c] {
			continue
		}
		child := nd.Clone()
		child.Color[next] = c
		child.Next = next + 1
		children = append(children, child)
	}

	if k+1 <= ub-1 {
		child := nd.Clone()
		child.Color[next] = k + 1
		child.TotColors = k + 1
		child.Next = next + 1
		children = append(children, child)
	}

	return children
}

// Validate checks a node's five structural invariants against g. Only
// tests call it; the coordinator and workers do not run it on nodes
// received over the wire.
func (nd Node) Validate(g *graph.Graph) error {
	n := g.Size()
	if len(nd.Color) != n {
		return fmt.Errorf("coloring: color vector length %d != n=%d", len(nd.Color), n)
	}
	if nd.Next < 0 || nd.Next > n {
		return fmt.Errorf("coloring: next=%d out of range [0,%d]", nd.Next, n)
	}

	maxColor := 0
	for i := 0; i < n; i++ {
		c := nd.Color[i]
		if i < nd.Next {
			if c < 1 || c > nd.TotColors {
				return fmt.Errorf("coloring: color[%d]=%d out of range [1,%d]", i, c, nd.TotColors)
			}
			if c > maxColor {
				maxColor = c
			}
		} else if c != 0 {
			return fmt.Errorf("coloring: color[%d]=%d, expected 0 for unassigned vertex", i, c)
		}
	}
	if nd.Next == 0 {
		maxColor = 0
	}
	if maxColor != nd.TotColors {
		return fmt.Errorf("coloring: tot_colors=%d does not equal max assigned color %d", nd.TotColors, maxColor)
	}

	for i := 0; i < nd.Next; i++ {
		for j := i + 1; j < nd.Next; j++ {
			if g.Adj(i, j) && nd.Color[i] == nd.Color[j] {
				return fmt.Errorf("coloring: edge (%d,%d) monochromatic with color %d", i, j, nd.Color[i])
			}
		}
	}
	return nil
}

// Proper reports whether a final node is a proper coloring: no edge has
// both endpoints colored equally. Only meaningful once IsFinal is true,
// but checks whatever prefix is assigned regardless.
func (nd Node) Proper(g *graph.Graph) bool {
	for i := 0; i < nd.Next; i++ {
		for j := i + 1; j < nd.Next; j++ {
			if g.Adj(i, j) && nd.Color[i] == nd.Color[j] {
				return false
			}
		}
	}
	return true
}
