// Package layout is the spatial engine of the mindmap: it maps the
// canonical tree onto screen positions for four orientations, equalizes
// visual spacing between unequal rectangles by iterative relaxation, and
// repairs overlaps after local edits without recomputing the whole tree.
//
// The engine is a pure function of (tree, orientation, config): it runs
// synchronously on the calling goroutine, never mutates the tree, and is
// deterministic - identical inputs produce bit-identical positions.
// Geometric difficulties (crowding, non-convergence) surface as warnings
// in the result, never as errors.
package layout

import (
	"fmt"

	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// Result is the derived spatial state for one layout pass. Positions are
// node centers relative to the root's origin. Regions are subtree
// bounding boxes, maintained so the overlap resolver can treat a subtree
// as a rigid unit without revisiting its nodes.
//
// A Result is a cache of derived state, never a source of truth: any
// structural edit invalidates it.
type Result struct {
	Orientation Orientation
	Positions   map[string]geom.Point
	Sides       map[string]tree.Side // derived side per node; root is SideNone
	Regions     map[string]geom.Rect // subtree AABB per node
	Radius      float64              // first-ring radius actually used (radial only)
	Warnings    []Warning
}

// NodeRect returns the node's rectangle at its laid-out position.
func (r *Result) NodeRect(n *tree.Node) geom.Rect {
	return geom.RectAt(r.Positions[n.ID], n.Width, n.Height)
}

// Clone returns a deep copy of the result, so a caller can keep the
// previous layout for drag-cancel restore while a new one is computed.
func (r *Result) Clone() *Result {
	c := &Result{
		Orientation: r.Orientation,
		Positions:   make(map[string]geom.Point, len(r.Positions)),
		Sides:       make(map[string]tree.Side, len(r.Sides)),
		Regions:     make(map[string]geom.Rect, len(r.Regions)),
		Radius:      r.Radius,
		Warnings:    append([]Warning(nil), r.Warnings...),
	}
	for k, v := range r.Positions {
		c.Positions[k] = v
	}
	for k, v := range r.Sides {
		c.Sides[k] = v
	}
	for k, v := range r.Regions {
		c.Regions[k] = v
	}
	return c
}

// Layout computes a position for every visible node of t under the given
// orientation and config. The tree is validated first; a degenerate tree
// (no nodes, dangling parent, duplicate orders, parent cycle) is rejected
// before any geometry runs.
//
// Collapsed subtrees are skipped: a collapsed node is positioned, its
// descendants are not.
func Layout(t *tree.Tree, o Orientation, cfg Config) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	res := &Result{
		Orientation: o,
		Positions:   make(map[string]geom.Point, t.Len()),
		Sides:       make(map[string]tree.Side, t.Len()),
		Regions:     make(map[string]geom.Rect, t.Len()),
		Radius:      cfg.BaseRadius,
	}

	root := t.Root()
	res.Positions[root.ID] = geom.Point{}
	res.Sides[root.ID] = tree.SideNone
	assignSides(t, o, res)

	if o.Radial() {
		layoutRadial(t, o, cfg, res)
	} else {
		layoutLinear(t, o, cfg, res)
	}

	computeRegions(t, root.ID, res)
	return res, nil
}

// assignSides derives every node's side from the canonical tree, never
// from a previous layout: re-deriving from the source of truth is what
// keeps repeated orientation toggles from compounding mirrors.
func assignSides(t *tree.Tree, o Orientation, res *Result) {
	rootKids := t.VisibleChildren(t.RootID())
	n := len(rootKids)
	for i, id := range rootKids {
		side := ToVisualPosition(i, o, n).Side
		for _, d := range t.Subtree(id) {
			res.Sides[d] = side
		}
	}
}

// computeRegions fills res.Regions bottom-up with each visible subtree's
// bounding box.
func computeRegions(t *tree.Tree, id string, res *Result) geom.Rect {
	n := t.Node(id)
	region := geom.RectAt(res.Positions[id], n.Width, n.Height)
	for _, c := range t.VisibleChildren(id) {
		region = region.Union(computeRegions(t, c, res))
	}
	res.Regions[id] = region
	return region
}
