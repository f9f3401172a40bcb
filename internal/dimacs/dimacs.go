// Package dimacs parses the DIMACS-style graph input file format: `c`
// comment lines, one `p edge N M` header, and `e u v` edge lines with
// 1-based vertex numbers. This lives outside the core engine, which
// only ever sees the resulting internal/graph.Graph.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/leonardoevi/Graph-coloring/internal/graph"
)

// Parse reads a DIMACS-style edge-list graph from r. It enforces that
// the declared vertex count N in the `p edge N M` header matches n
// exactly, so callers that already know the intended size can catch a
// mismatched input file early instead of silently truncating or
// padding it.
func Parse(r io.Reader, n int) (*graph.Graph, error) {
	scanner := bufio.NewScanner(r)
	var edges [][2]int
	sawHeader := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "c":
			continue
		case "p":
			if sawHeader {
				return nil, fmt.Errorf("dimacs: line %d: duplicate p-line", lineNo)
			}
			if len(fields) != 4 || fields[1] != "edge" {
				return nil, fmt.Errorf("dimacs: line %d: malformed p-line %q, want \"p edge N M\"", lineNo, line)
			}
			declaredN, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("dimacs: line %d: bad vertex count %q: %w", lineNo, fields[2], err)
			}
			if declaredN != n {
				return nil, fmt.Errorf("dimacs: line %d: declared N=%d does not match configured n=%d", lineNo, declaredN, n)
			}
			sawHeader = true
		case "e":
			if !sawHeader {
				return nil, fmt.Errorf("dimacs: line %d: edge line before p-line", lineNo)
			}
			if len(fields) != 3 {
				return nil, fmt.Errorf("dimacs: line %d: malformed e-line %q, want \"e u v\"", lineNo, line)
			}
			u, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("dimacs: line %d: bad endpoint %q: %w", lineNo, fields[1], err)
			}
			v, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("dimacs: line %d: bad endpoint %q: %w", lineNo, fields[2], err)
			}
			edges = append(edges, [2]int{u - 1, v - 1})
		default:
			return nil, fmt.Errorf("dimacs: line %d: unrecognized line type %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dimacs: scanning input: %w", err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("dimacs: no p-line found")
	}

	return graph.New(n, edges)
}

// Write serializes g as a DIMACS-style edge list, the inverse of Parse
// (1-based vertex numbers on output, matching the format Parse accepts).
func Write(w io.Writer, g *graph.Graph) error {
	edges := g.Edges()
	if _, err := fmt.Fprintf(w, "p edge %d %d\n", g.Size(), len(edges)); err != nil {
		return fmt.Errorf("dimacs: writing header: %w", err)
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "e %d %d\n", e[0]+1, e[1]+1); err != nil {
			return fmt.Errorf("dimacs: writing edge (%d,%d): %w", e[0], e[1], err)
		}
	}
	return nil
}
