// Package export turns a layout result into artifacts for the rendering
// collaborator: a position-map JSON document and Graphviz-based SVG/PNG
// snapshots. The engine itself never draws pixels; these exports exist so
// a laid-out map can be inspected or embedded without a live view layer.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/kosirm/mindmap-writer-sub008/pkg/layout"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// dotScale converts layout pixels to DOT points (Graphviz position units).
const dotScale = 1.0

// ToDOT converts a laid-out tree to Graphviz DOT with pinned node
// positions, for rendering with the neato engine. Node order in the
// output follows canonical tree order, so output is deterministic.
func ToDOT(t *tree.Tree, res *layout.Result) string {
	var buf bytes.Buffer
	buf.WriteString("graph mindmap {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	t.Walk(func(n *tree.Node, depth int) bool {
		pos, ok := res.Positions[n.ID]
		if !ok {
			return true // collapsed descendant
		}
		attrs := []string{
			// Graphviz y grows upward, screen y downward.
			fmt.Sprintf("pos=%q", fmt.Sprintf("%.2f,%.2f!", pos.X*dotScale, -pos.Y*dotScale)),
			fmt.Sprintf("width=%.3f", n.Width/72),
			fmt.Sprintf("height=%.3f", n.Height/72),
			"fixedsize=true",
		}
		if depth == 0 {
			attrs = append(attrs, "fillcolor=lightblue")
		}
		if n.Collapsed {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
		return true
	})

	buf.WriteString("\n")
	t.Walk(func(n *tree.Node, _ int) bool {
		if _, ok := res.Positions[n.ID]; !ok {
			return true
		}
		for _, c := range t.VisibleChildren(n.ID) {
			fmt.Fprintf(&buf, "  %q -- %q;\n", n.ID, c)
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
