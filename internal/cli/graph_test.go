package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveGraphRejectsBothInputAndFixture(t *testing.T) {
	_, err := resolveGraph(graphFlags{input: "graph.dimacs", fixture: "empty"}, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mutually exclusive")
}

func TestResolveGraphRejectsNeitherInputNorFixture(t *testing.T) {
	_, err := resolveGraph(graphFlags{}, 0)
	require.Error(t, err)
}

func TestResolveGraphBuildsNamedFixture(t *testing.T) {
	g, err := resolveGraph(graphFlags{fixture: "cycle", n: 5}, 0)
	require.NoError(t, err)
	require.Equal(t, 5, g.Size())
}

func TestResolveGraphRejectsUnknownFixture(t *testing.T) {
	_, err := resolveGraph(graphFlags{fixture: "hexagon", n: 5}, 0)
	require.Error(t, err)
}

func TestResolveGraphParsesDimacsInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.dimacs")
	require.NoError(t, os.WriteFile(path, []byte("p edge 3 2\ne 1 2\ne 2 3\n"), 0o644))

	g, err := resolveGraph(graphFlags{input: path, n: 3}, 0)
	require.NoError(t, err)
	require.Equal(t, 3, g.Size())
}
