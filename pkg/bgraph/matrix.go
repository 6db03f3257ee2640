package bgraph

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cverad/connectome/pkg/errors"
)

// symTol is the tolerance used when checking matrix symmetry. Correlation
// matrices written with limited precision are symmetric only approximately.
const symTol = 1e-9

// FromMatrix builds a graph from a square connectivity matrix. Row/column i
// corresponds to names[i]. Zero entries mean no edge; the diagonal is
// ignored. Undirected graphs require a symmetric matrix and read the upper
// triangle; directed graphs read every off-diagonal entry.
func FromMatrix(names []string, m [][]float64, opts ...Option) (*Graph, error) {
	n := len(names)
	if len(m) != n {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "matrix has %d rows, want %d", len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "row %d has %d columns, want %d", i, len(row), n)
		}
	}

	g, err := New(names, opts...)
	if err != nil {
		return nil, err
	}

	if g.directed {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j && m[i][j] != 0 {
					if err := g.AddEdge(names[i], names[j], m[i][j]); err != nil {
						return nil, err
					}
				}
			}
		}
		return g, nil
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m[i][j]-m[j][i]) > symTol {
				return nil, errors.New(errors.ErrCodeInvalidMatrix,
					"asymmetric at [%d,%d]: %g vs %g (use WithDirected for directed graphs)", i, j, m[i][j], m[j][i])
			}
			if m[i][j] != 0 {
				if err := g.AddEdge(names[i], names[j], m[i][j]); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}

// ReadMatrix parses a whitespace- or comma-separated numeric matrix from r.
// Blank lines and lines starting with '#' are skipped.
func ReadMatrix(r io.Reader) ([][]float64, error) {
	var m [][]float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<22)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		row := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidMatrix, "line %d: %q is not a number", lineNo, f)
			}
			row = append(row, v)
		}
		m = append(m, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read matrix: %w", err)
	}
	if len(m) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "empty matrix")
	}
	return m, nil
}

// ImportMatrix reads a connectivity matrix file and builds a graph. Vertex
// names default to "v1".."vN" unless names is non-nil.
func ImportMatrix(path string, names []string, opts ...Option) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	m, err := ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if names == nil {
		names = DefaultNames(len(m))
	}
	g, err := FromMatrix(names, m, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// DefaultNames generates the fallback vertex names "v1".."vN" used when no
// atlas region list is supplied.
func DefaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("v%d", i+1)
	}
	return names
}

// Binarize returns a copy of m with every non-zero entry set to 1. Matrices
// already containing only 0 and 1 are returned unchanged (same backing
// storage), so callers may pass pre-binarized adjacency matrices cheaply.
func Binarize(m [][]float64) [][]float64 {
	binary := true
	for _, row := range m {
		for _, v := range row {
			if v != 0 && v != 1 {
				binary = false
				break
			}
		}
		if !binary {
			break
		}
	}
	if binary {
		return m
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if v != 0 {
				out[i][j] = 1
			}
		}
	}
	return out
}

// AdjacencyMatrix returns the graph's adjacency matrix. Weighted graphs
// produce weight entries, unweighted graphs 0/1. Undirected edges appear in
// both triangles.
func (g *Graph) AdjacencyMatrix() [][]float64 {
	n := g.Order()
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for _, e := range g.edges {
		w := e.Weight
		if !g.weighted {
			w = 1
		}
		m[e.From][e.To] = w
		if !g.directed {
			m[e.To][e.From] = w
		}
	}
	return m
}
