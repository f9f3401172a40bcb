package cli

import (
	"fmt"
	"os"

	"github.com/leonardoevi/Graph-coloring/internal/dimacs"
	"github.com/leonardoevi/Graph-coloring/internal/fixtures"
	"github.com/leonardoevi/Graph-coloring/internal/graph"
)

// graphFlags are the flags shared by every subcommand that needs a
// graph: either --input (a DIMACS file) or --fixture (a named
// generator), mutually exclusive.
type graphFlags struct {
	input   string
	fixture string
	n       int
	n2      int // second partition size, only for "bipartite"
}

// resolveGraph loads the graph either subcommand was configured to use.
// vertices, when nonzero, cross-checks the result's size against
// internal/dimacs.Parse's own declared-N check for a DIMACS input file.
func resolveGraph(f graphFlags, vertices int) (*graph.Graph, error) {
	switch {
	case f.input != "" && f.fixture != "":
		return nil, fmt.Errorf("cli: --input and --fixture are mutually exclusive")
	case f.input != "":
		n := vertices
		if n == 0 {
			n = f.n
		}
		file, err := os.Open(f.input)
		if err != nil {
			return nil, fmt.Errorf("cli: opening %s: %w", f.input, err)
		}
		defer file.Close()
		return dimacs.Parse(file, n)
	case f.fixture != "":
		return buildFixture(f)
	default:
		return nil, fmt.Errorf("cli: one of --input or --fixture is required")
	}
}

func buildFixture(f graphFlags) (*graph.Graph, error) {
	switch f.fixture {
	case "empty":
		return fixtures.Empty(f.n)
	case "complete":
		return fixtures.Complete(f.n)
	case "cycle":
		return fixtures.Cycle(f.n)
	case "path":
		return fixtures.Path(f.n)
	case "bipartite":
		return fixtures.CompleteBipartite(f.n, f.n2)
	case "petersen":
		return fixtures.Petersen()
	default:
		return nil, fmt.Errorf("cli: unknown fixture %q (want empty, complete, cycle, path, bipartite, or petersen)", f.fixture)
	}
}
