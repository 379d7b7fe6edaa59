package doc

import (
	"encoding/json"
	"fmt"

	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// Document is the canonical serialization format for a mindmap.
type Document struct {
	Nodes []Node `json:"nodes"`
}

// Node is the serialized form of one tree node.
type Node struct {
	ID        string  `json:"id"`
	ParentID  string  `json:"parent_id,omitempty"`
	Order     int     `json:"order"`
	Side      string  `json:"side,omitempty"` // "left", "right" or absent
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Collapsed bool    `json:"collapsed,omitempty"`
}

var sideFromString = map[string]tree.Side{
	"":      tree.SideNone,
	"left":  tree.SideLeft,
	"right": tree.SideRight,
}

// FromTree converts a tree to its serialization format. Nodes are emitted
// depth-first in canonical order, which makes output deterministic and
// guarantees every parent precedes its children on re-import.
func FromTree(t *tree.Tree) Document {
	d := Document{Nodes: make([]Node, 0, t.Len())}
	t.Walk(func(n *tree.Node, _ int) bool {
		d.Nodes = append(d.Nodes, Node{
			ID:        n.ID,
			ParentID:  n.ParentID,
			Order:     n.Order,
			Side:      n.Side.String(),
			Width:     n.Width,
			Height:    n.Height,
			Collapsed: n.Collapsed,
		})
		return true
	})
	return d
}

// ToTree converts a Document to a tree and validates it. Nodes may appear
// in any order in the input; they are added parents-first internally.
// Returns tree sentinel errors (wrapped with the offending node ID) for
// structural violations.
func ToTree(d Document) (*tree.Tree, error) {
	byID := make(map[string]Node, len(d.Nodes))
	children := make(map[string][]Node)
	var roots []Node
	for _, n := range d.Nodes {
		if _, dup := byID[n.ID]; dup {
			return nil, fmt.Errorf("node %s: %w", n.ID, tree.ErrDuplicateNodeID)
		}
		byID[n.ID] = n
		if n.ParentID == "" {
			roots = append(roots, n)
		} else {
			children[n.ParentID] = append(children[n.ParentID], n)
		}
	}

	t := tree.New()
	var add func(n Node) error
	add = func(n Node) error {
		side, ok := sideFromString[n.Side]
		if !ok {
			return fmt.Errorf("node %s: unknown side %q", n.ID, n.Side)
		}
		if err := t.AddNode(tree.Node{
			ID:        n.ID,
			ParentID:  n.ParentID,
			Order:     n.Order,
			Side:      side,
			Width:     n.Width,
			Height:    n.Height,
			Collapsed: n.Collapsed,
		}); err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
		for _, c := range children[n.ID] {
			if err := add(c); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := add(r); err != nil {
			return nil, err
		}
	}

	// Nodes whose parent chain never reaches a root were skipped by the
	// recursive add: either the parent is missing entirely, or the chain
	// loops. Surface them rather than dropping them.
	if t.Len() != len(d.Nodes) {
		for id, n := range byID {
			if t.Node(id) != nil {
				continue
			}
			if _, exists := byID[n.ParentID]; exists {
				return nil, fmt.Errorf("node %s: %w", id, tree.ErrCircularReference)
			}
			return nil, fmt.Errorf("node %s: %w: %s", id, tree.ErrUnknownParent, n.ParentID)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Marshal converts a tree to indented JSON bytes.
func Marshal(t *tree.Tree) ([]byte, error) {
	return json.MarshalIndent(FromTree(t), "", "  ")
}

// Unmarshal parses JSON bytes into a validated tree.
func Unmarshal(data []byte) (*tree.Tree, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToTree(d)
}
