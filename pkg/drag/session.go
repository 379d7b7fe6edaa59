// Package drag tracks one in-progress interactive edit: which nodes are
// being dragged, where they started, and what the pointer is currently
// over. The session is transient - it is created on drag start, destroyed
// on commit or cancel, and never serialized. All tree mutation is
// delegated to the tree package's validated executor, which a session
// calls at most once.
package drag

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/layout"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// State is the lifecycle of a drag session:
// Idle → Dragging → {Committing | Cancelled} → Idle.
type State int

const (
	// StateIdle means no session is active.
	StateIdle State = iota
	// StateDragging means a session is tracking pointer movement.
	StateDragging
	// StateCommitting means the drop was accepted and the executor ran.
	StateCommitting
	// StateCancelled means the session was abandoned and original
	// positions restored.
	StateCancelled
)

// TargetKind classifies the current hover target for highlight purposes.
type TargetKind int

const (
	// TargetInvalid marks a drop that validation rejected (e.g. a cycle).
	TargetInvalid TargetKind = iota
	// TargetLeaf is a childless node that would gain a child container.
	TargetLeaf
	// TargetContainer is a node that already has children.
	TargetContainer
	// TargetCanvas is empty space; the drop reparents at root level.
	TargetCanvas
)

// Hover is the per-pointer-move answer the view uses for highlighting.
type Hover struct {
	TargetID string
	Kind     TargetKind
}

// Valid reports whether dropping here would be accepted.
func (h Hover) Valid() bool { return h.Kind != TargetInvalid }

var (
	// ErrSessionActive is returned by Start while a session is already in
	// progress. Edit commits are serialized: one session must resolve
	// fully before another may begin.
	ErrSessionActive = errors.New("drag session already active")

	// ErrNoSession is returned by Move, Drop and Cancel outside a session.
	ErrNoSession = errors.New("no active drag session")
)

// Controller owns the drag state machine for one document view.
// It is synchronous and single-threaded, like the rest of the engine.
type Controller struct {
	tree  *tree.Tree
	index *layout.Index
	cfg   layout.Config

	state      State
	outcome    State // StateCommitting or StateCancelled after a session ends
	structural bool  // drag was started with the reparent modifier held
	selection  []string
	original   map[string]geom.Point
	candidate  Hover
}

// NewController creates an idle controller over the given tree and the
// spatial index of its current layout.
func NewController(t *tree.Tree, ix *layout.Index, cfg layout.Config) *Controller {
	return &Controller{tree: t, index: ix, cfg: cfg, state: StateIdle}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Selection returns the dragged node IDs in their grid order.
func (c *Controller) Selection() []string { return slices.Clone(c.selection) }

// Start enters Dragging for the given selection, capturing every dragged
// node's position from res so Cancel can restore them verbatim.
// structural marks a modifier-initiated reparent drag as opposed to a
// plain reposition; releasing the modifier mid-drag cancels it.
func (c *Controller) Start(nodeIDs []string, res *layout.Result, structural bool) error {
	if c.state == StateDragging {
		return ErrSessionActive
	}
	if err := tree.ValidateMove(c.tree, nodeIDs, ""); err != nil {
		return err
	}

	sel := slices.Clone(nodeIDs)
	slices.SortFunc(sel, func(a, b string) int {
		if d := c.tree.Depth(a) - c.tree.Depth(b); d != 0 {
			return d
		}
		if d := c.tree.Node(a).Order - c.tree.Node(b).Order; d != 0 {
			return d
		}
		return compare(a, b)
	})

	orig := make(map[string]geom.Point, len(sel))
	for _, id := range sel {
		for _, n := range c.tree.Subtree(id) {
			p, ok := res.Positions[n]
			if !ok {
				return fmt.Errorf("drag: no position for node %s", n)
			}
			orig[n] = p
		}
	}

	c.state = StateDragging
	c.structural = structural
	c.selection = sel
	c.original = orig
	c.candidate = Hover{Kind: TargetCanvas}
	return nil
}

// Move updates the candidate target for the current pointer position and
// returns the hover classification for highlighting. The check is
// read-only: nothing mutates until Drop. If the session is structural and
// the modifier was released, the session cancels itself and the returned
// hover is invalid; callers should then read Cancel's restored positions
// via [Controller.Originals].
func (c *Controller) Move(p geom.Point, modifierHeld bool) Hover {
	if c.state != StateDragging {
		return Hover{}
	}
	if c.structural && !modifierHeld {
		c.cancel()
		return Hover{}
	}

	hit := c.index.HitTest(p)
	c.candidate = c.classify(hit)
	return c.candidate
}

// classify maps a raw hit to a hover kind via the executor's read-only
// validation.
func (c *Controller) classify(hit string) Hover {
	if hit == "" {
		return Hover{Kind: TargetCanvas}
	}
	if err := tree.ValidateMove(c.tree, c.selection, hit); err != nil {
		return Hover{TargetID: hit, Kind: TargetInvalid}
	}
	if len(c.tree.Children(hit)) == 0 {
		return Hover{TargetID: hit, Kind: TargetLeaf}
	}
	return Hover{TargetID: hit, Kind: TargetContainer}
}

// Drop exits to Committing: it calls the executor exactly once with the
// current candidate target and returns the resulting edit. An invalid
// candidate cancels the session instead and returns the validation error;
// no mutation happens in that case.
func (c *Controller) Drop(dropIndex int) (*tree.Edit, error) {
	if c.state != StateDragging {
		return nil, ErrNoSession
	}
	if !c.candidate.Valid() {
		c.cancel()
		return nil, fmt.Errorf("drag: %w", tree.ErrCircularReference)
	}

	edit, err := tree.ProposeMove(c.tree, c.selection, c.candidate.TargetID, dropIndex)
	if err != nil {
		c.cancel()
		return nil, err
	}
	if err := edit.Apply(c.tree); err != nil {
		c.cancel()
		return nil, err
	}
	c.finish(StateCommitting)
	return edit, nil
}

// Cancel abandons the session and returns the captured original positions
// (for every node of every dragged subtree) so the view can snap back.
// The tree is untouched.
func (c *Controller) Cancel() (map[string]geom.Point, error) {
	if c.state != StateDragging {
		return nil, ErrNoSession
	}
	orig := c.original
	c.cancel()
	return orig, nil
}

// Originals returns the captured start positions of the last session.
// Valid until the next Start.
func (c *Controller) Originals() map[string]geom.Point { return c.original }

func (c *Controller) cancel() { c.finish(StateCancelled) }

// Outcome returns how the last session ended: StateCommitting or
// StateCancelled, or StateIdle if no session has run yet.
func (c *Controller) Outcome() State { return c.outcome }

// finish records how the session ended and returns to Idle. Nothing
// lingers: discarding session state is all cancellation requires, since
// no computation runs asynchronously.
func (c *Controller) finish(terminal State) {
	c.outcome = terminal
	c.selection = nil
	c.candidate = Hover{}
	c.state = StateIdle
}

// GridOffsets returns the square-ish grid the dragged set is arranged
// into while hovering and on drop: ceil(sqrt(n)) columns, filled left to
// right then top to bottom, centered on the anchor point. Offsets align
// with [Controller.Selection] order, which is also the order the executor
// assigns to the dropped nodes.
func GridOffsets(n int, cellW, cellH float64) []geom.Point {
	if n <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	offsets := make([]geom.Point, n)
	for i := range offsets {
		col, row := i%cols, i/cols
		offsets[i] = geom.Point{
			X: (float64(col) - float64(cols-1)/2) * cellW,
			Y: (float64(row) - float64(rows-1)/2) * cellH,
		}
	}
	return offsets
}

func compare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
