// Package doc is the serialization boundary with the document-storage
// collaborator: it reads and writes the canonical mindmap tree as JSON.
//
// The format carries only canonical fields (id, parent, order, side,
// dimensions, collapsed). Positions are deliberately absent - they are
// derived state, recomputed from the tree on every layout pass, and any
// cached copy is invalidated by a structural edit.
//
// The format is designed for round-trip fidelity: import → edit → export
// → re-import produces identical trees, and export output is
// deterministic (nodes emitted depth-first in canonical order, so parents
// always precede their children).
package doc
