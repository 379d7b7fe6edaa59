package doc

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// Write writes a tree as indented JSON to w.
func Write(t *tree.Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromTree(t)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON document from r into a validated tree.
func Read(r io.Reader) (*tree.Tree, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToTree(d)
}

// WriteFile writes a tree to a JSON file with 0644 permissions.
func WriteFile(t *tree.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(t, f)
}

// ReadFile reads a JSON file and returns the decoded tree.
// Returns validation errors for malformed documents or trees that violate
// the structural invariants.
func ReadFile(path string) (*tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
