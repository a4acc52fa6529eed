package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

// Tree represents a decision tree. It is composed of its root node and the
// classes it is able to predict.
type Tree struct {
	Root    Node
	Classes feature.Classes
}

// New takes the root node and the classes a tree predicts and returns the tree.
func New(root Node, classes feature.Classes) *Tree {
	return &Tree{root, classes}
}

// Predict takes a sample and returns the class label predicted by the tree.
// A nil tree predicts DefaultClass.
func (t *Tree) Predict(s feature.Sample) int {
	if t == nil {
		return DefaultClass
	}
	return Classify(t.Root, s)
}

// PredictClass takes a sample and returns the class predicted by the tree
// with its name and display name.
func (t *Tree) PredictClass(s feature.Sample) feature.Class {
	label := t.Predict(s)
	return feature.Class{Label: label, Name: t.Classes.Name(label), Display: t.Classes.Display(label)}
}

/*
Test takes a context.Context and a dataset and returns the fraction of samples
in the dataset for which the tree predicts their label, 0 for an empty dataset.
It returns an error only if the context is done before all samples are tested.
*/
func (t *Tree) Test(ctx context.Context, ds *dataset.Dataset) (float64, error) {
	count := ds.Count()
	if count == 0 {
		return 0.0, nil
	}
	var hits int
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return 0.0, err
		}
		s := ds.Sample(i)
		if t.Predict(s) == s.Label() {
			hits++
		}
	}
	return float64(hits) / float64(count), nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, Node) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	return traverse(ctx, t.Root, bottomup, f)
}

func traverse(ctx context.Context, n Node, bottomup bool, f func(context.Context, Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
		if err != nil {
			return err
		}
	}
	if in, ok := n.(*Internal); ok {
		for _, b := range in.Branches {
			if b.Node == nil {
				continue
			}
			err = traverse(ctx, b.Node, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		err = f(ctx, n)
	}
	return err
}

// Stats holds the size of a tree
type Stats struct {
	Nodes  int
	Leaves int
	Depth  int
}

// Stats returns the number of nodes and leaves of the tree and its depth,
// the number of branches from the root to the deepest leaf.
func (t *Tree) Stats() Stats {
	var s Stats
	t.Traverse(context.Background(), false, func(_ context.Context, n Node) error {
		s.Nodes++
		if _, ok := n.(*Leaf); ok {
			s.Leaves++
		}
		return nil
	})
	if t != nil && t.Root != nil {
		s.Depth = depth(t.Root)
	}
	return s
}

func depth(n Node) int {
	in, ok := n.(*Internal)
	if !ok {
		return 0
	}
	var result int
	for _, b := range in.Branches {
		if b.Node == nil {
			continue
		}
		if d := depth(b.Node) + 1; d > result {
			result = d
		}
	}
	return result
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return t.subtreeString(nil, t.Root)
}

func (t *Tree) subtreeString(c feature.Criterion, n Node) string {
	var result string
	if c != nil {
		result = fmt.Sprintf("{ %v }\n", c)
	}
	var branches []Branch
	switch node := n.(type) {
	case *Leaf:
		result = fmt.Sprintf("%s[ %s ]\n \n", result, t.Classes.Name(node.Class))
		return result
	case *Internal:
		result = fmt.Sprintf("%s( %s )\n|\n", result, node.Feature.Name())
		branches = node.Branches
	}
	for i, b := range branches {
		for j, line := range strings.Split(t.subtreeString(b.Criterion, b.Node), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(branches)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
