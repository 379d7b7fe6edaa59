package tree

import (
	"fmt"
	"slices"
)

// Record describes the parent/order change of a single node within an
// [Edit]. Nodes whose order merely shifted (gap closing, insertion) appear
// with OldParentID == NewParentID.
type Record struct {
	NodeID      string `json:"node_id"`
	OldParentID string `json:"old_parent_id"`
	NewParentID string `json:"new_parent_id"`
	OldOrder    int    `json:"old_order"`
	NewOrder    int    `json:"new_order"`
}

// Edit is a validated structural edit, ready to be applied. It lists every
// node whose canonical parent or order changes, which is exactly what a
// persistence layer needs to update storage and notify other views.
type Edit struct {
	Records []Record `json:"records"`
}

// IsNoop reports whether applying the edit would change nothing.
func (e *Edit) IsNoop() bool { return len(e.Records) == 0 }

// Apply commits the edit to t. The tree must be in the state ProposeMove
// observed; callers serialize edits, so this holds by construction. Apply
// never partially mutates: records were validated together and either all
// take effect or (for an edit produced against a different tree) an error
// is returned before any field changes.
func (e *Edit) Apply(t *Tree) error {
	for _, r := range e.Records {
		n := t.nodes[r.NodeID]
		if n == nil {
			return fmt.Errorf("%w: %s", ErrUnknownNode, r.NodeID)
		}
		if n.ParentID != r.OldParentID || n.Order != r.OldOrder {
			return fmt.Errorf("edit is stale: node %s moved since validation", r.NodeID)
		}
	}

	for _, r := range e.Records {
		t.removeChild(r.OldParentID, r.NodeID)
	}
	for _, r := range e.Records {
		n := t.nodes[r.NodeID]
		n.ParentID = r.NewParentID
		n.Order = r.NewOrder
	}
	for _, r := range e.Records {
		t.insertChild(r.NewParentID, r.NodeID)
	}
	return nil
}

// ValidateMove checks whether moving nodeIDs under targetID is structurally
// legal, without computing or applying anything. targetID may be "" for a
// canvas drop. It is the read-only check the drag controller runs on every
// pointer move to decide highlight state.
//
// Returns ErrUnknownNode for absent IDs, ErrInvalidNodeID for an empty
// selection or an attempt to move the root, and ErrCircularReference when
// the target is one of the moved nodes or lies inside a moved subtree.
func ValidateMove(t *Tree, nodeIDs []string, targetID string) error {
	if len(nodeIDs) == 0 {
		return fmt.Errorf("%w: empty selection", ErrInvalidNodeID)
	}
	selected := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		if t.nodes[id] == nil {
			return fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
		if id == t.rootID {
			return fmt.Errorf("%w: root cannot be moved", ErrInvalidNodeID)
		}
		selected[id] = true
	}
	if targetID == "" {
		return nil // canvas drop reparents under the root
	}
	if t.nodes[targetID] == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, targetID)
	}

	// Walk the target's ancestor chain, target included. Hitting any moved
	// node means the drop would make a node its own ancestor.
	if selected[targetID] {
		return fmt.Errorf("%w: %s cannot be dropped onto itself", ErrCircularReference, targetID)
	}
	for _, anc := range t.Ancestors(targetID) {
		if selected[anc] {
			return fmt.Errorf("%w: %s is inside the moved subtree of %s", ErrCircularReference, targetID, anc)
		}
	}
	return nil
}

// ProposeMove validates and computes the structural edit that drops
// nodeIDs onto targetID ("" for the canvas, which reparents under the
// document root) at dropIndex among the target's children (negative or
// out-of-range appends).
//
// Semantics:
//   - A moved node carries its entire subtree; internal parent/child order
//     is preserved.
//   - Selecting a parent together with only some of its children detaches
//     the unselected children to the parent's former parent (or to the
//     root when that parent was the canvas).
//   - The old parents' remaining children are renumbered to close gaps;
//     the new parent's children are renumbered around the insertion point.
//   - Multiple top-level moved nodes are inserted in their prior canonical
//     order, matching the left-to-right, top-to-bottom order of the drop
//     grid the drag controller arranges them into.
//
// ProposeMove never mutates t. A validation failure returns a nil edit and
// one of the sentinel errors wrapped by [ValidateMove].
func ProposeMove(t *Tree, nodeIDs []string, targetID string, dropIndex int) (*Edit, error) {
	if err := ValidateMove(t, nodeIDs, targetID); err != nil {
		return nil, err
	}

	newParent := targetID
	if newParent == "" {
		newParent = t.rootID
	}

	selected := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		selected[id] = true
	}

	// Top-level moved nodes: selected nodes with no selected ancestor.
	// Everything below them moves implicitly with the subtree.
	var moved []string
	for _, id := range nodeIDs {
		implicit := false
		for _, anc := range t.Ancestors(id) {
			if selected[anc] {
				implicit = true
				break
			}
		}
		if !implicit && !slices.Contains(moved, id) {
			moved = append(moved, id)
		}
	}
	slices.SortFunc(moved, func(a, b string) int {
		if d := t.Depth(a) - t.Depth(b); d != 0 {
			return d
		}
		if d := t.nodes[a].Order - t.nodes[b].Order; d != 0 {
			return d
		}
		return compareID(a, b)
	})

	work := t.Clone()

	// Detach unselected children of partially-selected parents to their
	// former grandparent before anything moves.
	for _, id := range nodeIDs {
		kids := work.Children(id)
		sel := 0
		for _, k := range kids {
			if selected[k] {
				sel++
			}
		}
		if sel == 0 || sel == len(kids) {
			continue
		}
		grand := work.nodes[id].ParentID
		if grand == "" {
			grand = work.rootID
		}
		for _, k := range kids {
			if !selected[k] {
				work.reparent(k, grand, -1)
			}
		}
	}

	// Same target check against the working tree: a detachment above may
	// have moved the target out of a moved subtree, never into one, so the
	// original validation still stands.
	idx := dropIndex
	for _, id := range moved {
		work.reparent(id, newParent, idx)
		if idx >= 0 {
			idx++
		}
	}

	return diff(t, work), nil
}

// reparent moves id under parent at index among parent's children
// (negative appends) and renumbers both affected sibling sets.
func (t *Tree) reparent(id, parent string, index int) {
	n := t.nodes[id]
	old := n.ParentID

	t.removeChild(old, id)
	t.renumber(old)

	kids := t.children[parent]
	if index < 0 || index > len(kids) {
		index = len(kids)
	}
	kids = slices.Insert(slices.Clone(kids), index, id)
	t.children[parent] = kids
	n.ParentID = parent
	t.renumber(parent)
}

// diff returns the edit transforming before into after, covering every
// node whose parent or order differs.
func diff(before, after *Tree) *Edit {
	e := &Edit{}
	ids := make([]string, 0, len(after.nodes))
	for id := range after.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		b, a := before.nodes[id], after.nodes[id]
		if b.ParentID == a.ParentID && b.Order == a.Order {
			continue
		}
		e.Records = append(e.Records, Record{
			NodeID:      id,
			OldParentID: b.ParentID,
			NewParentID: a.ParentID,
			OldOrder:    b.Order,
			NewOrder:    a.Order,
		})
	}
	return e
}
