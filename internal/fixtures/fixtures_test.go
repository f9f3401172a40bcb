package fixtures_test

import (
	"testing"

	"github.com/leonardoevi/Graph-coloring/internal/fixtures"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	g, err := fixtures.Empty(5)
	require.NoError(t, err)
	require.Equal(t, 5, g.Size())
	require.Empty(t, g.Edges())
}

func TestComplete(t *testing.T) {
	g, err := fixtures.Complete(4)
	require.NoError(t, err)
	require.Equal(t, 4, g.Size())
	require.Len(t, g.Edges(), 6)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j {
				require.True(t, g.Adj(i, j))
			}
		}
	}
}

func TestCycle(t *testing.T) {
	g, err := fixtures.Cycle(5)
	require.NoError(t, err)
	require.Equal(t, 5, g.Size())
	require.Len(t, g.Edges(), 5)
	for i := 0; i < 5; i++ {
		require.True(t, g.Adj(i, (i+1)%5))
	}
	_, err = fixtures.Cycle(2)
	require.Error(t, err)
}

func TestPath(t *testing.T) {
	g, err := fixtures.Path(6)
	require.NoError(t, err)
	require.Equal(t, 6, g.Size())
	require.Len(t, g.Edges(), 5)
	_, err = fixtures.Path(1)
	require.Error(t, err)
}

func TestCompleteBipartite(t *testing.T) {
	g, err := fixtures.CompleteBipartite(3, 3)
	require.NoError(t, err)
	require.Equal(t, 6, g.Size())
	require.Len(t, g.Edges(), 9)
	for i := 0; i < 3; i++ {
		for j := 3; j < 6; j++ {
			require.True(t, g.Adj(i, j))
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j {
				require.False(t, g.Adj(i, j))
			}
		}
	}
}

func TestPetersen(t *testing.T) {
	g, err := fixtures.Petersen()
	require.NoError(t, err)
	require.Equal(t, 10, g.Size())
	require.Len(t, g.Edges(), 15)
	for v := 0; v < 10; v++ {
		deg := 0
		for u := 0; u < 10; u++ {
			if g.Adj(v, u) {
				deg++
			}
		}
		require.Equal(t, 3, deg, "Petersen graph must be 3-regular at vertex %d", v)
	}
}
