package id3

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
	"github.com/Lizandraferrari/machine-learning/tree"
)

// DefaultTrainRatio is the share of samples used for training
// when a Trainer has no TrainRatio set
const DefaultTrainRatio = 0.8

/*
Trainer shuffles a dataset, splits it into a training set and a test set,
grows a tree on the training set and measures its accuracy on the test set.

A zero Trainer is usable: it grows trees with the DefaultStoppingStrategy,
trains on DefaultTrainRatio of the samples, shuffles with a time-seeded
source and does not log.
*/
type Trainer struct {
	Strategy   *StoppingStrategy
	TrainRatio float64
	Rand       *rand.Rand
	Logger     *zap.Logger
}

// Result is the outcome of training a tree
type Result struct {
	Tree     *tree.Tree
	Train    *dataset.Dataset
	Test     *dataset.Dataset
	Accuracy float64
}

// FormatAccuracy returns the accuracy of the result as a percentage with
// two decimals, like "87.50%"
func (r *Result) FormatAccuracy() string {
	return FormatAccuracy(r.Accuracy)
}

// FormatAccuracy takes a fraction and returns it as a percentage with
// two decimals
func FormatAccuracy(accuracy float64) string {
	return fmt.Sprintf("%.2f%%", accuracy*100)
}

/*
Train takes a context, a dataset, the features to predict its labels with and
the classes of those labels, and returns a Result with a tree grown on a
shuffled share of the dataset and its accuracy on the rest. The given dataset
is not modified.

An error is returned only if the context is done before training ends.
*/
func (t *Trainer) Train(ctx context.Context, ds *dataset.Dataset, features []feature.Feature, classes feature.Classes) (*Result, error) {
	trainSet, testSet := t.split(ds)
	logger := t.logger()
	ss := t.strategy()
	logger.Info("growing tree",
		zap.Int("train", trainSet.Count()),
		zap.Int("test", testSet.Count()),
		zap.Int("features", len(features)),
		zap.Int("minSamples", ss.MinSamples),
		zap.Int("maxDepth", ss.MaxDepth),
	)
	start := time.Now()
	root, err := Grow(ctx, trainSet, features, ss)
	if err != nil {
		return nil, err
	}
	result := &Result{Tree: tree.New(root, classes), Train: trainSet, Test: testSet}
	stats := result.Tree.Stats()
	logger.Info("tree grown",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("nodes", stats.Nodes),
		zap.Int("leaves", stats.Leaves),
		zap.Int("depth", stats.Depth),
	)
	result.Accuracy, err = result.Tree.Test(ctx, testSet)
	if err != nil {
		return nil, err
	}
	logger.Debug("tree tested", zap.Float64("accuracy", result.Accuracy))
	return result, nil
}

// Curve holds the accuracy of trees grown with increasing maximum depths
// on the same training set
type Curve struct {
	Depths        []int
	TrainAccuracy []float64
	TestAccuracy  []float64
}

/*
DepthCurve takes a context, a dataset, the features to predict its labels with
and a maximum depth, shuffles and splits the dataset once like Train does and
grows a tree on the training set for every maximum depth from 1 to the given
one, measuring its accuracy on both sets. The other settings of the trainer's
stopping strategy are kept.
*/
func (t *Trainer) DepthCurve(ctx context.Context, ds *dataset.Dataset, features []feature.Feature, maxDepth int) (*Curve, error) {
	trainSet, testSet := t.split(ds)
	ss := t.strategy()
	curve := &Curve{}
	for depth := 1; depth <= maxDepth; depth++ {
		ss.MaxDepth = depth
		root, err := Grow(ctx, trainSet, features, ss)
		if err != nil {
			return nil, err
		}
		tr := tree.New(root, nil)
		trainAccuracy, err := tr.Test(ctx, trainSet)
		if err != nil {
			return nil, err
		}
		testAccuracy, err := tr.Test(ctx, testSet)
		if err != nil {
			return nil, err
		}
		t.logger().Debug("depth curve point",
			zap.Int("depth", depth),
			zap.Float64("train", trainAccuracy),
			zap.Float64("test", testAccuracy),
		)
		curve.Depths = append(curve.Depths, depth)
		curve.TrainAccuracy = append(curve.TrainAccuracy, trainAccuracy)
		curve.TestAccuracy = append(curve.TestAccuracy, testAccuracy)
	}
	return curve, nil
}

func (t *Trainer) split(ds *dataset.Dataset) (*dataset.Dataset, *dataset.Dataset) {
	r := t.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ratio := t.TrainRatio
	if ratio == 0 {
		ratio = DefaultTrainRatio
	}
	return ds.Shuffle(r).Split(ratio)
}

func (t *Trainer) strategy() StoppingStrategy {
	if t.Strategy == nil {
		return DefaultStoppingStrategy()
	}
	return *t.Strategy
}

func (t *Trainer) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}
