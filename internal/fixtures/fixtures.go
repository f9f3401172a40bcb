// Package fixtures builds small, named graphs (empty, complete, cycle,
// complete bipartite, path, and the Petersen graph) as deterministic
// internal/graph.Graph values, for use in tests and the generate
// subcommand. Edge emission order and validation minima match the
// conventional definitions of each family: same vertex count, same
// deterministic edge order, same minimum size per shape.
package fixtures

import (
	"fmt"

	"github.com/leonardoevi/Graph-coloring/internal/graph"
)

// Empty returns the n-vertex graph with no edges: the trivial instance,
// properly 1-colorable whenever n >= 1.
func Empty(n int) (*graph.Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("fixtures: Empty: n=%d < 0", n)
	}
	return graph.New(n, nil)
}

// Complete returns the complete graph K_n: every pair of distinct
// vertices adjacent. Mirrors builder.Complete's pair emission order
// (lexicographic by (i,j), i<j).
func Complete(n int) (*graph.Graph, error) {
	const minNodes = 1
	if n < minNodes {
		return nil, fmt.Errorf("fixtures: Complete: n=%d < min=%d", n, minNodes)
	}
	edges := make([][2]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return graph.New(n, edges)
}

// Cycle returns the n-vertex simple cycle C_n, n >= 3. Mirrors
// builder.Cycle's edge emission order: i -> (i+1)%n for i=0..n-1.
func Cycle(n int) (*graph.Graph, error) {
	const minNodes = 3
	if n < minNodes {
		return nil, fmt.Errorf("fixtures: Cycle: n=%d < min=%d", n, minNodes)
	}
	edges := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, (i + 1) % n})
	}
	return graph.New(n, edges)
}

// Path returns the n-vertex simple path P_n, n >= 2. Mirrors
// builder.Path's edge emission order: (i-1) -> i for i=1..n-1.
func Path(n int) (*graph.Graph, error) {
	const minNodes = 2
	if n < minNodes {
		return nil, fmt.Errorf("fixtures: Path: n=%d < min=%d", n, minNodes)
	}
	edges := make([][2]int, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{i - 1, i})
	}
	return graph.New(n, edges)
}

// CompleteBipartite returns K_{n1,n2}: left partition vertices 0..n1-1,
// right partition vertices n1..n1+n2-1, every cross pair adjacent.
// Mirrors builder.CompleteBipartite's emission order: i ascending over
// the left partition, inner j ascending over the right partition.
func CompleteBipartite(n1, n2 int) (*graph.Graph, error) {
	const minPartition = 1
	if n1 < minPartition || n2 < minPartition {
		return nil, fmt.Errorf("fixtures: CompleteBipartite: n1=%d, n2=%d, each must be >= %d", n1, n2, minPartition)
	}
	edges := make([][2]int, 0, n1*n2)
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			edges = append(edges, [2]int{i, n1 + j})
		}
	}
	return graph.New(n1+n2, edges)
}

// petersenEdges is the canonical Petersen graph shell: an outer 5-cycle
// 0-1-2-3-4-0, an inner 5-cycle (the pentagram) 5-7-9-6-8-5, and five
// spokes i -> i+5 connecting them. The teacher's variants_platonic.go
// hardcodes its five solids the same way (a fixed, pre-sorted chord
// list); Petersen isn't one of the five Platonic shells, so it is
// authored here in the same style rather than derived.
var petersenEdges = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}, // outer cycle
	{5, 7}, {7, 9}, {9, 6}, {6, 8}, {8, 5}, // inner pentagram
	{0, 5}, {1, 6}, {2, 7}, {3, 8}, {4, 9}, // spokes
}

// Petersen returns the 10-vertex, 3-regular Petersen graph, chromatic
// number 3.
func Petersen() (*graph.Graph, error) {
	return graph.New(10, petersenEdges)
}
