package queue

import (
	"fmt"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
	"github.com/Lizandraferrari/machine-learning/tree"
)

// Task represents a tree node to be developed.
type Task struct {
	id string
	// The dataset of training data with samples
	// satisfying the criteria on the branches from
	// the root of the tree down to the node.
	Dataset *dataset.Dataset
	// The list of features that can be used
	// to split the node into branches, in the
	// order they must be considered.
	// It excludes the categorical features used
	// in ancestor nodes.
	AvailableFeatures []feature.Feature
	// The number of branches from the root of
	// the tree down to the node.
	Depth int
	// Place receives the developed node and puts
	// it in its place in the tree.
	Place func(tree.Node)
}

// ID returns a string that identifies the
// task on the queue it was pushed to.
func (t *Task) ID() string {
	return t.id
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s depth:%d %v}", t.id, t.Depth, t.Dataset)
}
