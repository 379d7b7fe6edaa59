package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

func TestRadialFirstRingRadius(t *testing.T) {
	tr := starTree(t, 6, 80, 30)
	res, err := Layout(tr, Clockwise, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if res.Radius != DefaultConfig().BaseRadius {
		t.Errorf("Radius = %v, want base radius (no capacity growth expected)", res.Radius)
	}
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("c%02d", i)
		p := res.Positions[id]
		if d := distFromOrigin(p.X, p.Y); math.Abs(d-res.Radius) > 1e-6 {
			t.Errorf("%s at distance %v from origin, want %v", id, d, res.Radius)
		}
	}
}

func TestRadialSingleChildBelowRoot(t *testing.T) {
	// One child owns the whole circle; its slot center lands at 6 o'clock
	// regardless of sweep direction.
	for _, o := range []Orientation{Clockwise, Anticlockwise} {
		res, err := Layout(starTree(t, 1, 80, 30), o, DefaultConfig())
		if err != nil {
			t.Fatalf("%s: %v", o, err)
		}
		p := res.Positions["c00"]
		if math.Abs(p.X) > 1e-6 || math.Abs(p.Y-DefaultConfig().BaseRadius) > 1e-6 {
			t.Errorf("%s: single child at %+v, want (0, %v)", o, p, DefaultConfig().BaseRadius)
		}
	}
}

func TestRadialSweepDirection(t *testing.T) {
	// Two children split the circle; the first slot sits a quarter turn
	// from 12 o'clock in the sweep direction.
	res, err := Layout(starTree(t, 2, 80, 30), Clockwise, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if p := res.Positions["c00"]; p.X < 99 {
		t.Errorf("clockwise first child at %+v, want 3 o'clock", p)
	}

	res, err = Layout(starTree(t, 2, 80, 30), Anticlockwise, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if p := res.Positions["c00"]; p.X > -99 {
		t.Errorf("anticlockwise first child at %+v, want 9 o'clock", p)
	}
}

func TestRadialNoSiblingOverlap(t *testing.T) {
	tr := starTree(t, 6, 80, 30)
	res, err := Layout(tr, Clockwise, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	ids := tr.Children("root")
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a := res.NodeRect(tr.Node(ids[i]))
			b := res.NodeRect(tr.Node(ids[j]))
			if a.Overlaps(b) {
				t.Errorf("%s and %s overlap: %+v vs %+v", ids[i], ids[j], a, b)
			}
		}
	}
}

func TestRadialCapacityGrowth(t *testing.T) {
	// 14 wide children cannot fit on the base ring at minimum spacing:
	// the radius must grow to the smallest fitting value and a capacity
	// warning must be reported, never an error.
	cfg := DefaultConfig()
	tr := starTree(t, 14, 120, 30)
	res, err := Layout(tr, Clockwise, cfg)
	if err != nil {
		t.Fatalf("capacity overflow must not fail: %v", err)
	}

	required := 14 * (120*cfg.ShrinkFactor + cfg.MinSpacing)
	wantRadius := required / geom.FullCircle
	if math.Abs(res.Radius-wantRadius) > 1e-6 {
		t.Errorf("Radius = %v, want %v", res.Radius, wantRadius)
	}
	if res.Radius <= cfg.BaseRadius {
		t.Errorf("Radius = %v, want growth beyond base %v", res.Radius, cfg.BaseRadius)
	}

	found := false
	for _, w := range res.Warnings {
		if w.Code == WarnCapacity && w.NodeID == "root" {
			found = true
		}
	}
	if !found {
		t.Errorf("no capacity warning in %v", res.Warnings)
	}

	// Every child still gets a position on the grown ring.
	for i := 0; i < 14; i++ {
		id := fmt.Sprintf("c%02d", i)
		p, ok := res.Positions[id]
		if !ok {
			t.Fatalf("no position for %s", id)
		}
		if d := distFromOrigin(p.X, p.Y); math.Abs(d-res.Radius) > 1e-6 {
			t.Errorf("%s at distance %v, want %v", id, d, res.Radius)
		}
	}
}

func TestRadialConvergenceWarning(t *testing.T) {
	// Tall skinny nodes pass the arc-length capacity check but can never
	// be separated vertically on a small ring. The engine reports the
	// failure and returns its best attempt.
	tr := starTree(t, 8, 10, 200)
	res, err := Layout(tr, Clockwise, DefaultConfig())
	if err != nil {
		t.Fatalf("non-convergence must not fail: %v", err)
	}

	found := false
	for _, w := range res.Warnings {
		if w.Code == WarnConvergence {
			found = true
		}
	}
	if !found {
		t.Errorf("no convergence warning in %v", res.Warnings)
	}
	if len(res.Positions) != tr.Len() {
		t.Errorf("got %d positions, want %d despite warning", len(res.Positions), tr.Len())
	}
}

func TestRadialSecondRingSpacing(t *testing.T) {
	// A chain root -> a -> b: the grandchild ring sits one level spacing
	// beyond the first ring.
	cfg := DefaultConfig()
	tr := tree.New()
	for _, n := range []tree.Node{
		{ID: "root", Width: 100, Height: 40},
		{ID: "a", ParentID: "root", Width: 60, Height: 24},
		{ID: "b", ParentID: "a", Width: 60, Height: 24},
	} {
		if err := tr.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}

	res, err := Layout(tr, Clockwise, cfg)
	if err != nil {
		t.Fatal(err)
	}
	p := res.Positions["b"]
	want := cfg.BaseRadius + cfg.LevelSpacing
	if d := distFromOrigin(p.X, p.Y); math.Abs(d-want) > 1e-6 {
		t.Errorf("grandchild at distance %v from origin, want %v", d, want)
	}
}

func TestRadialChildWithinParentSector(t *testing.T) {
	// Children of a first-ring node stay in that node's angular
	// neighborhood instead of spreading over the full circle.
	tr := uniformTree(t, 2, 4)
	res, err := Layout(tr, Clockwise, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		parent := fmt.Sprintf("root.%d", i)
		pp := res.Positions[parent]
		parentAngle := math.Atan2(pp.Y, pp.X)
		for j := 0; j < 4; j++ {
			cp := res.Positions[fmt.Sprintf("%s.%d", parent, j)]
			childAngle := math.Atan2(cp.Y, cp.X)
			diff := math.Abs(geom.NormalizeAngle(childAngle-parentAngle+math.Pi) - math.Pi)
			if diff > math.Pi/2 {
				t.Errorf("child %s.%d at angle %.2f, parent %s at %.2f: outside sector", parent, j, childAngle, parent, parentAngle)
			}
		}
	}
}
