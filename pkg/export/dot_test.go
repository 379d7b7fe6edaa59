package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kosirm/mindmap-writer-sub008/pkg/layout"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

func laidOutTree(t *testing.T) (*tree.Tree, *layout.Result) {
	t.Helper()
	tr := tree.New()
	nodes := []tree.Node{
		{ID: "root", Width: 100, Height: 40},
		{ID: "a", ParentID: "root", Order: 0, Width: 80, Height: 30},
		{ID: "b", ParentID: "root", Order: 1, Width: 80, Height: 30, Collapsed: true},
		{ID: "b1", ParentID: "b", Order: 0, Width: 60, Height: 20},
	}
	for _, n := range nodes {
		if err := tr.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	res, err := layout.Layout(tr, layout.LeftToRight, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return tr, res
}

func TestToDOT(t *testing.T) {
	tr, res := laidOutTree(t)
	dot := ToDOT(tr, res)

	if !strings.HasPrefix(dot, "graph mindmap {") {
		t.Errorf("ToDOT() does not open a graph block:\n%s", dot)
	}
	for _, want := range []string{
		"layout=neato",
		`"root" [pos="0.00,-0.00!"`,
		`"root" -- "a";`,
		`"root" -- "b";`,
		"fillcolor=lightblue", // root highlight
		"dashed",              // collapsed marker on b
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}

	// b is collapsed, so b1 has no position and must not appear.
	if strings.Contains(dot, `"b1"`) {
		t.Errorf("ToDOT() emitted collapsed descendant b1:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	tr, res := laidOutTree(t)
	if ToDOT(tr, res) != ToDOT(tr, res) {
		t.Error("ToDOT() output is not deterministic")
	}
}

func TestMarshalPositions(t *testing.T) {
	tr, res := laidOutTree(t)
	data, err := MarshalPositions(res)
	if err != nil {
		t.Fatalf("MarshalPositions: %v", err)
	}

	var pm PositionMap
	if err := json.Unmarshal(data, &pm); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if pm.Orientation != "left-to-right" {
		t.Errorf("Orientation = %q, want left-to-right", pm.Orientation)
	}
	if len(pm.Positions) != tr.Len()-1 {
		t.Errorf("Positions = %d entries, want %d (collapsed subtree skipped)", len(pm.Positions), tr.Len()-1)
	}
	if _, ok := pm.Positions["b1"]; ok {
		t.Error("Positions contains the collapsed descendant b1")
	}
}
