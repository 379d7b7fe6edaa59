package layout

import (
	"errors"
	"fmt"

	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// Orientation selects how canonical sibling order maps onto visual slots
// around the root. It is a pure view parameter: changing it never touches
// the canonical order, only which slot a given order lands in.
type Orientation int

const (
	// Clockwise sweeps siblings down the right side and up the left, so
	// the visual traversal reads as a continuous clock sweep.
	Clockwise Orientation = iota
	// Anticlockwise sweeps down the left side and up the right.
	Anticlockwise
	// LeftToRight places the first half of the siblings on the right side
	// and the rest on the left, both reading top to bottom.
	LeftToRight
	// RightToLeft mirrors LeftToRight across the root's vertical axis.
	RightToLeft
)

// ErrInvalidOrientation is returned by ParseOrientation for unknown names.
var ErrInvalidOrientation = errors.New("invalid orientation")

var orientationNames = map[Orientation]string{
	Clockwise:     "clockwise",
	Anticlockwise: "anticlockwise",
	LeftToRight:   "left-to-right",
	RightToLeft:   "right-to-left",
}

// String returns the canonical name of the orientation.
func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

// Radial reports whether the orientation uses the circular layout (the
// two clock modes). The linear modes use the indented tree layout.
func (o Orientation) Radial() bool {
	return o == Clockwise || o == Anticlockwise
}

var orientationAliases = map[string]Orientation{
	"cw":  Clockwise,
	"acw": Anticlockwise,
	"ltr": LeftToRight,
	"rtl": RightToLeft,
}

// ParseOrientation converts a name like "clockwise" or "left-to-right"
// (or a short alias like "ltr") into an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	for o, name := range orientationNames {
		if s == name {
			return o, nil
		}
	}
	if o, ok := orientationAliases[s]; ok {
		return o, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
}

// Orientations lists all supported modes in a stable order, for CLI help
// and exhaustive tests.
func Orientations() []Orientation {
	return []Orientation{Clockwise, Anticlockwise, LeftToRight, RightToLeft}
}

// VisualPos is a visual slot for a sibling: which side of the root it sits
// on and its 0-based top-to-bottom index on that side.
type VisualPos struct {
	Side  tree.Side
	Index int
}

// firstSide returns the side the first ceil(n/2) siblings map to.
func (o Orientation) firstSide() tree.Side {
	switch o {
	case Clockwise, LeftToRight:
		return tree.SideRight
	default:
		return tree.SideLeft
	}
}

// reversesSecondSide reports whether the second side's on-side order runs
// bottom to top. Only the clock modes reverse, and the reversal is a
// function of orientation alone - it is anchored to the root's axis, not
// to any node's local parent, and applies identically at every depth.
func (o Orientation) reversesSecondSide() bool {
	return o.Radial()
}

// SideCounts returns how many of n siblings land on the first and second
// side: the first ceil(n/2) on the first side, the rest on the other.
func (o Orientation) SideCounts(n int) (first, second int) {
	first = (n + 1) / 2
	return first, n - first
}

// ToVisualPosition maps a canonical sibling index to its visual slot for
// the given orientation and sibling count. It is a bijection over
// [0, n) for fixed (o, n); [ToDataIndex] is its exact inverse.
func ToVisualPosition(dataIndex int, o Orientation, n int) VisualPos {
	mid, m2 := o.SideCounts(n)
	if dataIndex < mid {
		return VisualPos{Side: o.firstSide(), Index: dataIndex}
	}
	j := dataIndex - mid
	if o.reversesSecondSide() {
		j = m2 - 1 - j
	}
	return VisualPos{Side: otherSide(o.firstSide()), Index: j}
}

// ToDataIndex maps a visual slot back to the canonical sibling index. It
// inverts [ToVisualPosition] for the same (o, n).
func ToDataIndex(vp VisualPos, o Orientation, n int) int {
	mid, m2 := o.SideCounts(n)
	if vp.Side == o.firstSide() {
		return vp.Index
	}
	j := vp.Index
	if o.reversesSecondSide() {
		j = m2 - 1 - j
	}
	return mid + j
}

func otherSide(s tree.Side) tree.Side {
	if s == tree.SideLeft {
		return tree.SideRight
	}
	return tree.SideLeft
}
