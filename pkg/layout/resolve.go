package layout

import (
	"fmt"
	"math"

	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// ResolveResult describes the minimal repair after one node moved:
// rigid-body deltas for the shifted subtree roots, and the number of
// nodes the resolver walk examined. Visited is instrumentation for the
// complexity contract - the walk touches O(depth × siblings-per-level)
// nodes, never the whole tree, which is what keeps dragging responsive on
// large maps.
type ResolveResult struct {
	Deltas  map[string]geom.Point // subtree root ID -> translation applied to the whole subtree
	Visited int
}

// ResolveFromMovedNode repositions the minimal set of nodes needed to
// remove overlaps introduced by moving movedID to newPos. It walks the
// ancestor chain bottom-up: at each level it separates the moved node's
// siblings (treating each sibling subtree as a rigid unit via its cached
// region), then grows the parent's region to contain its children, then
// moves one level up.
//
// Sibling candidates are compared by true rectangle distance, never by
// left/right side membership: with angular orientations two nodes can be
// classified on opposite sides yet sit geometrically adjacent, so side
// filtering would miss real collisions.
//
// The tree and res are read, not written; call [ResolveResult.Apply] to
// materialize the deltas. res must be a layout of t.
func ResolveFromMovedNode(movedID string, newPos geom.Point, t *tree.Tree, res *Result, cfg Config) (*ResolveResult, error) {
	if t.Node(movedID) == nil {
		return nil, fmt.Errorf("resolve: %w: %s", tree.ErrUnknownNode, movedID)
	}
	old, ok := res.Positions[movedID]
	if !ok {
		return nil, fmt.Errorf("resolve: no position for node %s", movedID)
	}

	rr := &ResolveResult{Deltas: make(map[string]geom.Point)}
	overlay := make(map[string]geom.Rect) // region overrides for touched nodes

	regionOf := func(id string) geom.Rect {
		if r, ok := overlay[id]; ok {
			return r
		}
		return res.Regions[id]
	}
	shift := func(id string, d geom.Point) {
		cur := rr.Deltas[id]
		rr.Deltas[id] = cur.Add(d)
		r := regionOf(id)
		r.Center = r.Center.Add(d)
		overlay[id] = r
	}

	shift(movedID, newPos.Sub(old))

	cur := movedID
	for {
		parent := t.Parent(cur)
		if parent == nil {
			break
		}
		siblings := t.VisibleChildren(parent.ID)
		rr.Visited += len(siblings)

		separateSiblings(siblings, cur, cfg, regionOf, shift)

		// Grow the parent's bounding region to contain the possibly
		// repositioned children, then continue upward with the parent as
		// the changed node of the next level.
		grown := res.NodeRect(parent)
		for _, s := range siblings {
			grown = grown.Union(regionOf(s))
		}
		overlay[parent.ID] = grown
		rr.Visited++
		cur = parent.ID
	}

	return rr, nil
}

// separateSiblings pushes sibling regions apart until every pair keeps
// the minimum gap, holding pinned in place. Overlapping pairs separate
// along the axis that needs the smaller correction.
func separateSiblings(siblings []string, pinned string, cfg Config, regionOf func(string) geom.Rect, shift func(string, geom.Point)) {
	for pass := 0; pass < cfg.MaxIterations; pass++ {
		moved := false
		for i := 0; i < len(siblings); i++ {
			for j := i + 1; j < len(siblings); j++ {
				a, b := siblings[i], siblings[j]
				ra, rb := regionOf(a), regionOf(b)

				needX := (ra.W+rb.W)/2 + cfg.MinSpacing - math.Abs(rb.Center.X-ra.Center.X)
				needY := (ra.H+rb.H)/2 + cfg.MinSpacing - math.Abs(rb.Center.Y-ra.Center.Y)
				if needX <= 0 || needY <= 0 {
					continue
				}

				var d geom.Point
				if needX <= needY {
					d = geom.Point{X: needX}
					if rb.Center.X < ra.Center.X {
						d.X = -d.X
					}
				} else {
					d = geom.Point{Y: needY}
					if rb.Center.Y < ra.Center.Y {
						d.Y = -d.Y
					}
				}

				switch {
				case a == pinned:
					shift(b, d)
				case b == pinned:
					shift(a, geom.Point{X: -d.X, Y: -d.Y})
				default:
					half := geom.Point{X: d.X / 2, Y: d.Y / 2}
					shift(b, half)
					shift(a, geom.Point{X: -half.X, Y: -half.Y})
				}
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}

// Apply materializes the deltas into res: every node of a shifted subtree
// is translated rigidly and the affected regions are refreshed. This is
// the only part of resolution whose cost scales with the size of the
// shifted subtrees; the decision walk itself is bounded by depth and
// fanout.
func (rr *ResolveResult) Apply(t *tree.Tree, res *Result) {
	for id, d := range rr.Deltas {
		if d.X == 0 && d.Y == 0 {
			continue
		}
		for _, n := range t.Subtree(id) {
			if p, ok := res.Positions[n]; ok {
				res.Positions[n] = p.Add(d)
			}
			if r, ok := res.Regions[n]; ok {
				r.Center = r.Center.Add(d)
				res.Regions[n] = r
			}
		}
		// Refresh ancestor regions to contain the shifted subtree.
		for _, anc := range t.Ancestors(id) {
			node := t.Node(anc)
			grown := res.NodeRect(node)
			for _, c := range t.VisibleChildren(anc) {
				grown = grown.Union(res.Regions[c])
			}
			res.Regions[anc] = grown
		}
	}
}
