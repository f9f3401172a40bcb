package coloring_test

import (
	"testing"

	"github.com/leonardoevi/Graph-coloring/internal/coloring"
	"github.com/leonardoevi/Graph-coloring/internal/graph"
	"github.com/stretchr/testify/require"
)

func mustGraph(t *testing.T, n int, edges [][2]int) *graph.Graph {
	t.Helper()
	g, err := graph.New(n, edges)
	require.NoError(t, err)
	return g
}

func TestEmptyNodeInvariants(t *testing.T) {
	g := mustGraph(t, 4, nil)
	nd := coloring.Empty(4)
	require.NoError(t, nd.Validate(g))
	require.False(t, nd.IsFinal(4))
	require.Equal(t, 0, nd.TotColors)
}

func TestExpandTriangleFirstVertex(t *testing.T) {
	// K3: 0-1, 1-2, 0-2
	g := mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	nd := coloring.Empty(3)

	children := nd.Expand(g, 4)
	// tot_colors=0, no forbidden colors, only the "new color" branch applies (k+1=1<=ub-1=3)
	require.Len(t, children, 1)
	require.Equal(t, 1, children[0].Color[0])
	require.Equal(t, 1, children[0].TotColors)
	require.Equal(t, 1, children[0].Next)
}

func TestExpandReuseAndNewColorBranches(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 3}})
	// vertex 0 -> color 1, vertex 1 -> color 2 (forced distinct from 0)
	nd := coloring.Node{Color: []int{1, 2, 0, 0}, TotColors: 2, Next: 2}

	// vertex 2 is adjacent to both 0 (color1) and 1 (color2): both forbidden.
	children := nd.Expand(g, 10)
	require.Len(t, children, 1)
	require.Equal(t, 3, children[0].Color[2])
	require.Equal(t, 3, children[0].TotColors)

	// vertex 3 is adjacent only to 2 (color3): colors 1 and 2 are reused,
	// then the fresh color 4 follows since 4 <= ub-1.
	grandchildren := children[0].Expand(g, 10)
	require.Len(t, grandchildren, 3)
	require.Equal(t, 1, grandchildren[0].Color[3])
	require.Equal(t, 3, grandchildren[0].TotColors)
	require.Equal(t, 2, grandchildren[1].Color[3])
	require.Equal(t, 3, grandchildren[1].TotColors)
	require.Equal(t, 4, grandchildren[2].Color[3])
	require.Equal(t, 4, grandchildren[2].TotColors)
}

func TestExpandPrunesNewColorAgainstUB(t *testing.T) {
	g := mustGraph(t, 2, [][2]int{{0, 1}})
	nd := coloring.Node{Color: []int{1, 0}, TotColors: 1, Next: 1}

	// k+1 = 2; ub=2 means k+1 <= ub-1 is 2<=1, false: no new-color branch,
	// and no reuse branch either since color 1 is forbidden (adjacent).
	children := nd.Expand(g, 2)
	require.Empty(t, children)
}

func TestExpandFinalNodeReturnsNil(t *testing.T) {
	g := mustGraph(t, 1, nil)
	nd := coloring.Node{Color: []int{1}, TotColors: 1, Next: 1}
	require.True(t, nd.IsFinal(1))
	require.Nil(t, nd.Expand(g, 5))
}

func TestExpandDoesNotAliasParent(t *testing.T) {
	g := mustGraph(t, 2, nil)
	nd := coloring.Empty(2)
	children := nd.Expand(g, 5)
	require.Len(t, children, 1)
	children[0].Color[0] = 99
	require.Equal(t, 0, nd.Color[0], "Expand must not mutate the parent's Color slice")
}

func TestValidateRejectsMonochromaticEdge(t *testing.T) {
	g := mustGraph(t, 2, [][2]int{{0, 1}})
	nd := coloring.Node{Color: []int{1, 1}, TotColors: 1, Next: 2}
	require.Error(t, nd.Validate(g))
	require.False(t, nd.Proper(g))
}

func TestValidateRejectsBadTotColors(t *testing.T) {
	g := mustGraph(t, 2, nil)
	nd := coloring.Node{Color: []int{1, 2}, TotColors: 3, Next: 2}
	require.Error(t, nd.Validate(g))
}

func TestValidateRejectsUnassignedTail(t *testing.T) {
	g := mustGraph(t, 3, nil)
	nd := coloring.Node{Color: []int{1, 0, 2}, TotColors: 1, Next: 1}
	require.Error(t, nd.Validate(g))
}

// Exhaustively expanding from the root must only ever reach proper colorings.
func TestExpandAlwaysProducesValidNodes(t *testing.T) {
	g := mustGraph(t, 5, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}}) // C5
	ub := 6

	var walk func(nd coloring.Node)
	walk = func(nd coloring.Node) {
		require.NoError(t, nd.Validate(g))
		if nd.IsFinal(5) {
			return
		}
		for _, child := range nd.Expand(g, ub) {
			walk(child)
		}
	}
	walk(coloring.Empty(5))
}
