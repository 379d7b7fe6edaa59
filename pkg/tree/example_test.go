package tree_test

import (
	"fmt"

	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

func ExampleTree_basic() {
	// Build a small map: root with two branches
	t := tree.New()
	_ = t.AddNode(tree.Node{ID: "root", Width: 100, Height: 40})
	_ = t.AddNode(tree.Node{ID: "work", ParentID: "root", Order: 0, Width: 80, Height: 30})
	_ = t.AddNode(tree.Node{ID: "home", ParentID: "root", Order: 1, Width: 80, Height: 30})
	_ = t.AddNode(tree.Node{ID: "standup", ParentID: "work", Order: 0, Width: 60, Height: 20})

	fmt.Println("Nodes:", t.Len())
	fmt.Println("Children of root:", t.Children("root"))
	fmt.Println("Depth of standup:", t.Depth("standup"))
	// Output:
	// Nodes: 4
	// Children of root: [work home]
	// Depth of standup: 2
}

func ExampleProposeMove() {
	t := tree.New()
	_ = t.AddNode(tree.Node{ID: "root", Width: 100, Height: 40})
	_ = t.AddNode(tree.Node{ID: "work", ParentID: "root", Order: 0, Width: 80, Height: 30})
	_ = t.AddNode(tree.Node{ID: "home", ParentID: "root", Order: 1, Width: 80, Height: 30})
	_ = t.AddNode(tree.Node{ID: "standup", ParentID: "work", Order: 0, Width: 60, Height: 20})

	// Move standup under home. The edit is validated as a whole and
	// applied atomically.
	edit, err := tree.ProposeMove(t, []string{"standup"}, "home", -1)
	if err != nil {
		fmt.Println("rejected:", err)
		return
	}
	_ = edit.Apply(t)

	fmt.Println("Children of work:", t.Children("work"))
	fmt.Println("Children of home:", t.Children("home"))
	// Output:
	// Children of work: []
	// Children of home: [standup]
}
