package queue

import (
	"fmt"

	"github.com/pbanos/twig/dataset"
	"github.com/pbanos/twig/tree"
)

// Task represents a tree node to be developed
// from a subset of the training data.
type Task struct {
	// The path from the root of the tree to the
	// node, which identifies the task: "root"
	// for the root node, then ".l" or ".r" for
	// each left or right turn.
	Path string
	// Where the developed node must be set: the
	// root of the tree or a child of a split.
	Slot *tree.Node
	// The dataset of training data with the points
	// routed to the node from the root of the tree.
	Dataset dataset.Dataset
}

// ID returns a string that identifies the
// task, the path to its node.
func (t *Task) ID() string {
	return t.Path
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s (%d points)}", t.Path, len(t.Dataset))
}
