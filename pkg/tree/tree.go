// Package tree implements the canonical mindmap data model: a single-rooted
// tree of sized nodes whose sibling sequence is defined by an integer order
// field. Parent/order fields are the single source of truth; on-screen
// positions are always derived from them and never stored here.
//
// The package also implements structural edits (reparenting, sibling
// reordering) with cycle prevention. Edits are validated as a whole and
// applied atomically: a rejected edit leaves the tree untouched.
package tree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrInvalidNodeID is returned by [Tree.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Tree.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique per document.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownParent is returned when a node references a parent that does
	// not exist in the tree.
	ErrUnknownParent = errors.New("unknown parent node")

	// ErrMultipleRoots is returned by [Tree.AddNode] and [Tree.Validate]
	// when more than one node has no parent. A document has exactly one root.
	ErrMultipleRoots = errors.New("tree must have exactly one root")

	// ErrNoRoot is returned by [Tree.Validate] for a tree with zero nodes
	// or no parentless node.
	ErrNoRoot = errors.New("tree has no root")

	// ErrDuplicateOrder is returned by [Tree.Validate] when two siblings
	// share the same order value. Order is unique within a sibling set.
	ErrDuplicateOrder = errors.New("duplicate order among siblings")

	// ErrCircularReference is returned when a structural edit would make a
	// node its own ancestor, or when [Tree.Validate] detects a parent cycle.
	ErrCircularReference = errors.New("circular reference")

	// ErrUnknownNode is returned when an operation names a node ID that is
	// not present in the tree.
	ErrUnknownNode = errors.New("unknown node")
)

// Side is the left/right classification of a node relative to the root,
// used by orientation mapping. The root itself has no side; descendants
// inherit the side of their nearest side-determining ancestor.
type Side int

const (
	// SideNone means no side has been assigned (root, or not yet laid out).
	SideNone Side = iota
	// SideLeft places the node left of the root's vertical axis.
	SideLeft
	// SideRight places the node right of the root's vertical axis.
	SideRight
)

// String returns "left", "right" or "" for SideNone.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return ""
	}
}

// Node is a vertex in the mindmap tree. Width and Height are semantic
// dimensions supplied by whoever renders the node content; the engine
// treats them as opaque inputs that may change between layout calls.
//
// The zero value is not usable - ID must be set before adding to a Tree.
type Node struct {
	ID        string  // Unique identifier
	ParentID  string  // Parent node ID; empty for the root
	Order     int     // Canonical position among siblings
	Side      Side    // Left/right relative to root (root children only; derived elsewhere)
	Width     float64 // Rendered width, caller-supplied
	Height    float64 // Rendered height, caller-supplied
	Collapsed bool    // Children hidden from layout when true
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool { return n.ParentID == "" }

// NewNodeID returns a fresh unique node identifier.
func NewNodeID() string { return uuid.NewString() }

// Tree is a single-rooted mindmap tree indexed by node ID. Children are
// kept sorted by their Order field so sibling traversal always follows the
// canonical sequence.
//
// The zero value is not usable - use New to create a Tree. Tree is not
// safe for concurrent use without external synchronization; callers must
// serialize edit commits.
type Tree struct {
	nodes    map[string]*Node
	children map[string][]string // parent ID -> child IDs, sorted by Order
	rootID   string
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes:    make(map[string]*Node),
		children: make(map[string][]string),
	}
}

// AddNode adds a node to the tree. Returns ErrInvalidNodeID for an empty
// ID, ErrDuplicateNodeID if the ID is taken, ErrUnknownParent if the
// parent is not present, and ErrMultipleRoots when adding a second
// parentless node. Parents must therefore be added before their children.
func (t *Tree) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := t.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	if n.ParentID == "" {
		if t.rootID != "" {
			return ErrMultipleRoots
		}
		t.rootID = n.ID
	} else if _, ok := t.nodes[n.ParentID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParent, n.ParentID)
	}

	node := n
	t.nodes[node.ID] = &node
	t.insertChild(node.ParentID, node.ID)
	return nil
}

// Node returns the node with the given ID, or nil if absent. The returned
// pointer aliases tree state; use structural edit APIs to change topology.
func (t *Tree) Node(id string) *Node { return t.nodes[id] }

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node { return t.nodes[t.rootID] }

// RootID returns the root node's ID, or "" for an empty tree.
func (t *Tree) RootID() string { return t.rootID }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Children returns the IDs of id's children in canonical order. The
// returned slice is a copy. Passing the empty string returns the root.
func (t *Tree) Children(id string) []string {
	return slices.Clone(t.children[id])
}

// VisibleChildren returns id's children in canonical order, or nil when
// the node is collapsed. Layout skips collapsed subtrees entirely.
func (t *Tree) VisibleChildren(id string) []string {
	if n := t.nodes[id]; n != nil && n.Collapsed {
		return nil
	}
	return t.Children(id)
}

// Parent returns id's parent node, or nil for the root or unknown IDs.
func (t *Tree) Parent(id string) *Node {
	n := t.nodes[id]
	if n == nil || n.ParentID == "" {
		return nil
	}
	return t.nodes[n.ParentID]
}

// Ancestors returns the chain of ancestor IDs from id's parent up to and
// including the root. An unknown or root ID yields nil.
func (t *Tree) Ancestors(id string) []string {
	var chain []string
	n := t.nodes[id]
	for n != nil && n.ParentID != "" {
		chain = append(chain, n.ParentID)
		n = t.nodes[n.ParentID]
	}
	return chain
}

// IsAncestor reports whether ancestorID appears on the parent chain of id.
func (t *Tree) IsAncestor(ancestorID, id string) bool {
	n := t.nodes[id]
	for n != nil && n.ParentID != "" {
		if n.ParentID == ancestorID {
			return true
		}
		n = t.nodes[n.ParentID]
	}
	return false
}

// Depth returns the number of edges between id and the root. The root has
// depth 0; unknown IDs return -1.
func (t *Tree) Depth(id string) int {
	if _, ok := t.nodes[id]; !ok {
		return -1
	}
	return len(t.Ancestors(id))
}

// Subtree returns id and all of its descendants in depth-first canonical
// order. Collapsed flags are ignored: structural operations always act on
// the full subtree.
func (t *Tree) Subtree(id string) []string {
	if _, ok := t.nodes[id]; !ok {
		return nil
	}
	out := []string{id}
	for _, c := range t.children[id] {
		out = append(out, t.Subtree(c)...)
	}
	return out
}

// Walk visits every node reachable from the root in depth-first canonical
// order, calling fn with the node and its depth. Walk stops early if fn
// returns false.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var visit func(id string, depth int) bool
	visit = func(id string, depth int) bool {
		if !fn(t.nodes[id], depth) {
			return false
		}
		for _, c := range t.children[id] {
			if !visit(c, depth+1) {
				return false
			}
		}
		return true
	}
	if t.rootID != "" {
		visit(t.rootID, 0)
	}
}

// SetSize updates a node's semantic dimensions. Returns ErrUnknownNode for
// an absent ID. Sizes are inputs to layout, so any cached positions become
// stale after a call.
func (t *Tree) SetSize(id string, w, h float64) error {
	n := t.nodes[id]
	if n == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	n.Width, n.Height = w, h
	return nil
}

// SetCollapsed toggles whether a node's subtree participates in layout.
func (t *Tree) SetCollapsed(id string, collapsed bool) error {
	n := t.nodes[id]
	if n == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	n.Collapsed = collapsed
	return nil
}

// Clone returns a deep copy of the tree. Edits to the copy never affect
// the original.
func (t *Tree) Clone() *Tree {
	c := New()
	c.rootID = t.rootID
	for id, n := range t.nodes {
		node := *n
		c.nodes[id] = &node
	}
	for id, kids := range t.children {
		c.children[id] = slices.Clone(kids)
	}
	return c
}

// Validate checks the structural invariants the layout engine relies on:
// exactly one root, every parent reference resolves, the parent graph is
// acyclic, and order values are unique within each sibling set. It returns
// the first violation found, wrapping one of the sentinel errors above.
//
// Validate runs at the API boundary before layout so that geometric code
// never has to defend against degenerate input.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return ErrNoRoot
	}

	roots := 0
	for id, n := range t.nodes {
		if n.ParentID == "" {
			roots++
			continue
		}
		if _, ok := t.nodes[n.ParentID]; !ok {
			return fmt.Errorf("%w: node %s references %s", ErrUnknownParent, id, n.ParentID)
		}
	}
	if roots == 0 {
		return ErrNoRoot
	}
	if roots > 1 {
		return ErrMultipleRoots
	}

	// Cycle check: following parent pointers from any node must terminate
	// at the root within len(nodes) steps.
	for id := range t.nodes {
		steps := 0
		n := t.nodes[id]
		for n.ParentID != "" {
			if steps++; steps > len(t.nodes) {
				return fmt.Errorf("%w: parent chain from %s does not terminate", ErrCircularReference, id)
			}
			n = t.nodes[n.ParentID]
		}
	}

	for parent, kids := range t.children {
		seen := make(map[int]string, len(kids))
		for _, c := range kids {
			o := t.nodes[c].Order
			if prev, dup := seen[o]; dup {
				return fmt.Errorf("%w: %s and %s under %q share order %d", ErrDuplicateOrder, prev, c, parent, o)
			}
			seen[o] = c
		}
	}
	return nil
}

// insertChild adds id to parent's child list, keeping the list sorted by
// Order (ties broken by ID for determinism).
func (t *Tree) insertChild(parent, id string) {
	kids := append(t.children[parent], id)
	slices.SortFunc(kids, func(a, b string) int {
		if d := t.nodes[a].Order - t.nodes[b].Order; d != 0 {
			return d
		}
		return compareID(t.nodes[a].ID, t.nodes[b].ID)
	})
	t.children[parent] = kids
}

// removeChild detaches id from parent's child list without renumbering.
func (t *Tree) removeChild(parent, id string) {
	kids := t.children[parent]
	if i := slices.Index(kids, id); i >= 0 {
		t.children[parent] = slices.Delete(kids, i, i+1)
	}
	if len(t.children[parent]) == 0 {
		delete(t.children, parent)
	}
}

// renumber rewrites the Order fields of parent's children to 0..n-1,
// preserving their current relative sequence. This closes gaps left by a
// removal and guarantees order uniqueness after an insertion.
func (t *Tree) renumber(parent string) {
	for i, c := range t.children[parent] {
		t.nodes[c].Order = i
	}
}

func compareID(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
