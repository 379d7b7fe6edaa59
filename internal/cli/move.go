package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kosirm/mindmap-writer-sub008/pkg/doc"
	"github.com/kosirm/mindmap-writer-sub008/pkg/errors"
	"github.com/kosirm/mindmap-writer-sub008/pkg/observability"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// moveCommand creates the move command for structural edits from the shell.
func (c *CLI) moveCommand() *cobra.Command {
	var (
		selection string
		target    string
		index     int
		output    string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "move [map.json]",
		Short: "Reparent or reorder nodes in a mindmap document",
		Long: `Reparent or reorder nodes in a mindmap document.

The selected nodes become children of the target node, inserted at the
given index (append when negative). An empty target reparents to the
document root. Moves that would make a node its own ancestor are rejected
and leave the document untouched. Children of a moved node that are not
themselves selected stay behind with the moved node's former parent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMove(cmd.Context(), args[0], strings.Split(selection, ","), target, index, output, dryRun)
		},
	}

	cmd.Flags().StringVarP(&selection, "select", "s", "", "comma-separated node IDs to move (required)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "new parent node ID (empty: document root)")
	cmd.Flags().IntVarP(&index, "index", "i", -1, "insertion index among the target's children (-1: append)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the edit without writing it")
	_ = cmd.MarkFlagRequired("select")

	return cmd
}

// runMove validates, proposes and applies one structural edit.
func (c *CLI) runMove(ctx context.Context, input string, selection []string, target string, index int, output string, dryRun bool) error {
	t, err := doc.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	edit, err := tree.ProposeMove(t, selection, target, index)
	if err != nil {
		observability.Engine().OnEditRejected(ctx, err.Error())
		printError("Move rejected")
		return errors.Wrap(moveErrorCode(err), err, "move %s", strings.Join(selection, ","))
	}
	if edit.IsNoop() {
		printInfo("Nothing to do")
		return nil
	}

	for _, rec := range edit.Records {
		printDetail("%s: parent %s→%s order %d→%d",
			rec.NodeID, displayParent(rec.OldParentID), displayParent(rec.NewParentID),
			rec.OldOrder, rec.NewOrder)
	}

	if dryRun {
		printInfo("Dry run, %d records not applied", len(edit.Records))
		return nil
	}

	if err := edit.Apply(t); err != nil {
		observability.Engine().OnEditRejected(ctx, err.Error())
		return fmt.Errorf("apply edit: %w", err)
	}
	observability.Engine().OnEditApplied(ctx, len(edit.Records))

	if output == "" {
		output = input
	}
	if err := doc.WriteFile(t, output); err != nil {
		return fmt.Errorf("write document %s: %w", output, err)
	}

	printSuccess("Moved %d nodes", len(selection))
	printFile(output)
	printNewline()
	printNextStep("Layout", "mindmap layout "+output)

	return nil
}

// moveErrorCode classifies a rejected edit for machine-readable output.
func moveErrorCode(err error) errors.Code {
	if stderrors.Is(err, tree.ErrCircularReference) {
		return errors.ErrCodeCircularReference
	}
	return errors.ErrCodeDegenerateInput
}

// displayParent renders an empty parent ID as the root marker.
func displayParent(id string) string {
	if id == "" {
		return "(root)"
	}
	return id
}
