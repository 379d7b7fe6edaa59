package layout

import (
	"testing"

	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

func TestHitTest(t *testing.T) {
	tr := starTree(t, 2, 80, 30)
	res, err := Layout(tr, LeftToRight, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	ix := NewIndex(tr, res)

	if got := ix.HitTest(res.Positions["c00"]); got != "c00" {
		t.Errorf("HitTest(center of c00) = %q, want c00", got)
	}
	if got := ix.HitTest(geom.Point{X: 9999, Y: 9999}); got != "" {
		t.Errorf("HitTest(far away) = %q, want empty canvas", got)
	}
	// Just inside the node border still hits.
	edge := res.Positions["c01"].Add(geom.Point{X: 39, Y: 14})
	if got := ix.HitTest(edge); got != "c01" {
		t.Errorf("HitTest(near border of c01) = %q, want c01", got)
	}
}

func TestHitTestSmallestWins(t *testing.T) {
	// Two nodes forced onto the same spot: the smaller rectangle is
	// drawn on top and must win the hit.
	tr := tree.New()
	for _, n := range []tree.Node{
		{ID: "root", Width: 200, Height: 100},
		{ID: "small", ParentID: "root", Width: 40, Height: 20},
	} {
		if err := tr.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	res := &Result{
		Positions: map[string]geom.Point{"root": {}, "small": {}},
	}
	ix := NewIndex(tr, res)

	if got := ix.HitTest(geom.Point{}); got != "small" {
		t.Errorf("HitTest(overlap) = %q, want the smaller node", got)
	}
}

func TestIndexUpdateAndRemove(t *testing.T) {
	tr := starTree(t, 1, 80, 30)
	res, err := Layout(tr, LeftToRight, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	ix := NewIndex(tr, res)

	old := res.Positions["c00"]
	moved := geom.Point{X: 500, Y: 500}
	ix.Update("c00", geom.RectAt(moved, 80, 30))

	if got := ix.HitTest(old); got != "" {
		t.Errorf("HitTest(old position) = %q, want empty after update", got)
	}
	if got := ix.HitTest(moved); got != "c00" {
		t.Errorf("HitTest(new position) = %q, want c00", got)
	}

	ix.Remove("c00")
	if got := ix.HitTest(moved); got != "" {
		t.Errorf("HitTest after remove = %q, want empty", got)
	}
}

func TestIndexSkipsCollapsedDescendants(t *testing.T) {
	tr := starTree(t, 2, 80, 30)
	child := tree.Node{ID: "c00.0", ParentID: "c00", Width: 60, Height: 24}
	if err := tr.AddNode(child); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetCollapsed("c00", true); err != nil {
		t.Fatal(err)
	}
	res, err := Layout(tr, LeftToRight, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	ix := NewIndex(tr, res)

	if got := ix.HitTest(res.Positions["c00"]); got != "c00" {
		t.Errorf("HitTest(collapsed node) = %q, want c00", got)
	}
	if _, ok := res.Positions["c00.0"]; ok {
		t.Fatal("collapsed descendant should have no position")
	}
}
