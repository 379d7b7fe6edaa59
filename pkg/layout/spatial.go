package layout

import (
	"github.com/dhconnelly/rtreego"

	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// Index is an R-tree over the laid-out node rectangles, used by the drag
// controller to find the hover target under the pointer without scanning
// every node.
type Index struct {
	rt   *rtreego.Rtree
	byID map[string]*indexItem
}

type indexItem struct {
	id     string
	bounds rtreego.Rect
	area   float64
}

// Bounds implements rtreego.Spatial.
func (it *indexItem) Bounds() rtreego.Rect { return it.bounds }

// NewIndex builds a spatial index from a layout result. Only nodes with a
// position in res are indexed, so collapsed descendants are excluded.
func NewIndex(t *tree.Tree, res *Result) *Index {
	ix := &Index{
		rt:   rtreego.NewTree(2, 4, 16),
		byID: make(map[string]*indexItem, len(res.Positions)),
	}
	t.Walk(func(n *tree.Node, _ int) bool {
		if _, ok := res.Positions[n.ID]; ok {
			ix.insert(n.ID, res.NodeRect(n))
		}
		return true
	})
	return ix
}

// Update re-indexes a node's rectangle after it moved or resized.
func (ix *Index) Update(id string, r geom.Rect) {
	if it, ok := ix.byID[id]; ok {
		ix.rt.Delete(it)
		delete(ix.byID, id)
	}
	ix.insert(id, r)
}

// Remove drops a node from the index.
func (ix *Index) Remove(id string) {
	if it, ok := ix.byID[id]; ok {
		ix.rt.Delete(it)
		delete(ix.byID, id)
	}
}

// HitTest returns the ID of the node under p, or "" when the pointer is
// over empty canvas. When rectangles overlap, the smallest one wins (it
// is visually on top in the mindmap's draw order); ties break by ID so
// the answer is deterministic.
func (ix *Index) HitTest(p geom.Point) string {
	hits := ix.rt.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(1e-9))
	best := ""
	bestArea := 0.0
	for _, h := range hits {
		it := h.(*indexItem)
		if best == "" || it.area < bestArea || (it.area == bestArea && it.id < best) {
			best, bestArea = it.id, it.area
		}
	}
	return best
}

func (ix *Index) insert(id string, r geom.Rect) {
	bounds, err := rtreego.NewRect(rtreego.Point{r.Left(), r.Top()}, []float64{r.W, r.H})
	if err != nil {
		// Zero-sized nodes get a point-sized bounds instead of being lost.
		bounds = rtreego.Point{r.Center.X, r.Center.Y}.ToRect(1e-9)
	}
	it := &indexItem{id: id, bounds: bounds, area: r.W * r.H}
	ix.byID[id] = it
	ix.rt.Insert(it)
}
