// Package render draws annotated brain graphs.
//
// ToDOT converts an augmented graph to Graphviz DOT with vertices filled by
// their group colors, and RenderSVG rasterizes the DOT in process. The DOT
// output is also useful on its own as input to external Graphviz tooling.
package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/cverad/connectome/pkg/bgraph"
)

// Options configures DOT generation.
type Options struct {
	// Partition names the grouping whose colors fill the vertices, e.g.
	// "comm", "comm.wt", "comp", "lobe". Empty disables coloring; a
	// partition without stored colors falls back to white fill.
	Partition string

	// Labels includes vertex names in the rendered nodes. When false,
	// vertices render as small unlabeled points, which scales better for
	// atlases with hundreds of regions.
	Labels bool

	// WeightedEdges scales edge pen width by connection strength.
	WeightedEdges bool
}

// ToDOT converts an annotated graph to Graphviz DOT. Vertex fill and edge
// colors come from the "color.<partition>" attributes the colorizer stored;
// anatomical x/y coordinates, when present, pin vertex positions so the
// drawing matches the brain's spatial layout (render with neato -n).
func ToDOT(g *bgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	if g.Directed() {
		buf.WriteString("digraph connectome {\n")
	} else {
		buf.WriteString("graph connectome {\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10];\n")
	} else {
		buf.WriteString("  node [shape=point, style=filled, fillcolor=white, width=0.12];\n")
	}
	buf.WriteString("\n")

	vcolors, _ := g.VertexStrings("color." + opts.Partition)
	ecolors, _ := g.EdgeStrings("color." + opts.Partition)
	x, hasX := g.VertexAttr("x")
	y, hasY := g.VertexAttr("y")

	for v := 0; v < g.Order(); v++ {
		attrs := []string{}
		if opts.Labels {
			attrs = append(attrs, fmt.Sprintf("label=%q", g.Name(v)))
		}
		if vcolors != nil {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", vcolors[v]))
		}
		if hasX && hasY {
			attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", x[v], y[v]))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", g.Name(v), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	op := "--"
	if g.Directed() {
		op = "->"
	}
	maxW := 0.0
	if opts.WeightedEdges && g.Weighted() {
		for _, e := range g.Edges() {
			if w := math.Abs(e.Weight); w > maxW {
				maxW = w
			}
		}
	}
	for i, e := range g.Edges() {
		attrs := []string{}
		if ecolors != nil {
			attrs = append(attrs, fmt.Sprintf("color=%q", ecolors[i]))
		}
		if maxW > 0 {
			attrs = append(attrs, fmt.Sprintf("penwidth=%.2f", 0.5+2.5*math.Abs(e.Weight)/maxW))
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q %s %q;\n", g.Name(e.From), op, g.Name(e.To))
		} else {
			fmt.Fprintf(&buf, "  %q %s %q [%s];\n", g.Name(e.From), op, g.Name(e.To), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
