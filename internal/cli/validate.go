package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosirm/mindmap-writer-sub008/pkg/doc"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// validateCommand creates the validate command for document checking.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [map.json]",
		Short: "Check a mindmap document for structural problems",
		Long: `Check a mindmap document for structural problems.

Validation verifies that the document has exactly one root, that every
parent reference resolves, that no node is its own ancestor, and that
sibling orders are unique. The command also reports nodes with missing
sizes, which fall back to zero-extent boxes during layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

// runValidate loads and checks one document.
func (c *CLI) runValidate(input string) error {
	t, err := doc.ReadFile(input)
	if err != nil {
		printError("Invalid document")
		return err
	}

	var (
		maxDepth int
		unsized  int
		leaves   int
	)
	t.Walk(func(n *tree.Node, depth int) bool {
		if depth > maxDepth {
			maxDepth = depth
		}
		if n.Width <= 0 || n.Height <= 0 {
			unsized++
		}
		if len(t.Children(n.ID)) == 0 {
			leaves++
		}
		return true
	})

	printSuccess("Document is valid")
	printDetail("%d nodes, %d leaves, depth %d", t.Len(), leaves, maxDepth)
	if unsized > 0 {
		printWarning("%d nodes have no size and will collapse to points", unsized)
	}
	printNewline()
	printNextStep("Layout", fmt.Sprintf("mindmap layout %s", input))

	return nil
}
