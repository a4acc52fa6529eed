/*
Package id3 grows ID3 decision trees: trees whose nodes split the training
data on the feature, and for numeric features the threshold, that produce the
most information gain about the label of the samples.
*/
package id3

import (
	"context"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
	"github.com/Lizandraferrari/machine-learning/queue"
	"github.com/Lizandraferrari/machine-learning/tree"
)

// Seed takes a context, a dataset, a slice of features,
// the depth of the node to grow, a queue and a function
// to place the grown node, and pushes a task to develop
// the node on the queue, so that workers that consume from
// the queue afterwards grow a tree predicting the labels
// in the dataset using the features in the given slice.
// It returns an error if the task cannot be pushed to the
// queue (in the amount of time allowed by the given context).
func Seed(ctx context.Context, ds *dataset.Dataset, features []feature.Feature, depth int, q queue.Queue, place func(tree.Node)) error {
	task := &queue.Task{Dataset: ds, AvailableFeatures: features, Depth: depth, Place: place}
	return q.Push(ctx, task)
}

// BranchOut takes a context, a task and a stopping strategy,
// develops the node in the task using the task's dataset and
// available features, places it and returns the tasks to develop
// its children, if any.
//
// The node becomes a leaf, checking in this order, when:
//   - the dataset is empty, predicting tree.DefaultClass;
//   - all samples share the same label, predicting it;
//   - the stopping strategy stops the node or finds the best
//     partition of the dataset insufficient, predicting the
//     majority label.
//
// Otherwise, it becomes an internal node deciding on the
// feature of the best partition, with a child task per group.
// Categorical features are not available to the children of a
// node deciding on them, numeric features remain available.
func BranchOut(ctx context.Context, task *queue.Task, ss StoppingStrategy) ([]*queue.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds := task.Dataset
	place := task.Place
	if place == nil {
		place = func(tree.Node) {}
	}
	if ds.Count() == 0 {
		place(&tree.Leaf{Class: tree.DefaultClass})
		return nil, nil
	}
	if label, ok := ds.Pure(); ok {
		place(&tree.Leaf{Class: label})
		return nil, nil
	}
	if ss.Stop(ds, task.AvailableFeatures, task.Depth) {
		place(&tree.Leaf{Class: ds.MajorityLabel()})
		return nil, nil
	}
	p := BestSplit(ds, task.AvailableFeatures)
	if ss.Insufficient(p) {
		place(&tree.Leaf{Class: ds.MajorityLabel()})
		return nil, nil
	}
	criteria := make([]feature.Criterion, 0, len(p.Groups))
	for _, g := range p.Groups {
		criteria = append(criteria, g.Criterion)
	}
	node := tree.NewInternal(p.Feature, p.Threshold, criteria)
	available := task.AvailableFeatures
	if p.Threshold == nil {
		available = feature.Without(available, p.Feature)
	}
	tasks := make([]*queue.Task, 0, len(p.Groups))
	for i, g := range p.Groups {
		i := i
		tasks = append(tasks, &queue.Task{
			Dataset:           g.Dataset,
			AvailableFeatures: available,
			Depth:             task.Depth + 1,
			Place:             func(n tree.Node) { node.Branches[i].Node = n },
		})
	}
	place(node)
	return tasks, nil
}

// Work takes a context, a queue and a stopping strategy and
// enters a loop in which it:
//   - pulls a task from the queue,
//   - branches its node out using BranchOut,
//   - pushes the tasks for the children nodes into the queue,
//   - marks the task as completed on the queue.
//
// When no task can be pulled from the queue, the worker ends
// returning nil.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, or if an operation with the
// given queue returns a non-nil error.
func Work(ctx context.Context, q queue.Queue, ss StoppingStrategy) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		err = workTask(ctx, task, q, ss)
		if err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, q queue.Queue, ss StoppingStrategy) error {
	defer func() {
		q.Drop(ctx, task.ID())
	}()
	tasks, err := BranchOut(ctx, task, ss)
	if err != nil {
		return err
	}
	for _, st := range tasks {
		err = q.Push(ctx, st)
		if err != nil {
			return err
		}
	}
	return q.Complete(ctx, task.ID())
}

// Grow takes a context, a dataset, a slice of features and a
// stopping strategy and returns the root of a tree grown on the
// dataset to predict its labels using the features in the order
// they are given. The dataset is not modified.
//
// Growing happens on the calling goroutine and only fails if the
// context is done before the tree is complete.
func Grow(ctx context.Context, ds *dataset.Dataset, features []feature.Feature, ss StoppingStrategy) (tree.Node, error) {
	var root tree.Node
	q := queue.New()
	err := Seed(ctx, ds, features, 0, q, func(n tree.Node) { root = n })
	if err != nil {
		return nil, err
	}
	err = Work(ctx, q, ss)
	if err != nil {
		return nil, err
	}
	return root, nil
}
