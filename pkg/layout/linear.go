package layout

import (
	"math"

	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// layoutLinear places the tree in the indented style: each child sits a
// fixed horizontal step away from its parent on its side's growth axis,
// with siblings stacked vertically and centered on the parent. Spacing is
// linear, so no relaxation is needed - the first pass is already exact.
func layoutLinear(t *tree.Tree, o Orientation, cfg Config, res *Result) {
	rootKids := t.VisibleChildren(t.RootID())
	n := len(rootKids)
	if n == 0 {
		return
	}

	// Visual top-to-bottom sequence per side comes from the orientation
	// mapper, re-derived from canonical order on every pass.
	perSide := map[tree.Side][]string{}
	for i, id := range rootKids {
		vp := ToVisualPosition(i, o, n)
		kids := perSide[vp.Side]
		for len(kids) <= vp.Index {
			kids = append(kids, "")
		}
		kids[vp.Index] = id
		perSide[vp.Side] = kids
	}

	root := t.Root()
	for _, side := range []tree.Side{tree.SideLeft, tree.SideRight} {
		ordered := perSide[side]
		if len(ordered) == 0 {
			continue
		}
		dirX := 1.0
		if side == tree.SideLeft {
			dirX = -1.0
		}
		stackChildren(t, cfg, res, root, ordered, dirX)
	}
}

// subtreeExtent returns the vertical room a subtree needs: the larger of
// the node's own height and its children's stacked extents plus gaps.
func subtreeExtent(t *tree.Tree, cfg Config, id string) float64 {
	node := t.Node(id)
	kids := t.VisibleChildren(id)
	if len(kids) == 0 {
		return node.Height
	}
	total := 0.0
	for i, c := range kids {
		if i > 0 {
			total += cfg.MinSpacing
		}
		total += subtreeExtent(t, cfg, c)
	}
	return math.Max(node.Height, total)
}

// stackChildren positions ordered (top to bottom) beside parent, then
// recurses. dirX is +1 for the right side, -1 for the left.
func stackChildren(t *tree.Tree, cfg Config, res *Result, parent *tree.Node, ordered []string, dirX float64) {
	parentPos := res.Positions[parent.ID]

	total := 0.0
	extents := make([]float64, len(ordered))
	for i, id := range ordered {
		extents[i] = subtreeExtent(t, cfg, id)
		if i > 0 {
			total += cfg.MinSpacing
		}
		total += extents[i]
	}

	cursor := parentPos.Y - total/2
	for i, id := range ordered {
		node := t.Node(id)
		x := parentPos.X + dirX*(parent.Width/2+cfg.LevelSpacing+node.Width/2)
		y := cursor + extents[i]/2
		res.Positions[id] = geom.Point{X: x, Y: y}
		cursor += extents[i] + cfg.MinSpacing

		if kids := t.VisibleChildren(id); len(kids) > 0 {
			stackChildren(t, cfg, res, node, kids, dirX)
		}
	}
}
