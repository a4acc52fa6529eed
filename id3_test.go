package id3

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
	"github.com/Lizandraferrari/machine-learning/queue"
	"github.com/Lizandraferrari/machine-learning/tree"
)

var (
	x     = feature.NewNumericFeature("x")
	y     = feature.NewNumericFeature("y")
	color = feature.NewCategoricalFeature("color")
	shape = feature.NewCategoricalFeature("shape")
)

func numeric(name string, v float64) map[string]feature.Value {
	return map[string]feature.Value{name: feature.Number(v)}
}

func xDataset(values []float64, labels []int) *dataset.Dataset {
	var samples []dataset.Sample
	for i, v := range values {
		samples = append(samples, dataset.NewSample(numeric("x", v), labels[i]))
	}
	return dataset.New(samples)
}

func colorDataset(colors []string, labels []int) *dataset.Dataset {
	var samples []dataset.Sample
	for i, c := range colors {
		samples = append(samples, dataset.NewSample(map[string]feature.Value{"color": feature.Token(c)}, labels[i]))
	}
	return dataset.New(samples)
}

func strategy(minSamples, maxDepth int) StoppingStrategy {
	ss := DefaultStoppingStrategy()
	ss.MinSamples = minSamples
	ss.MaxDepth = maxDepth
	return ss
}

func TestGrowPureDatasetIsLeaf(t *testing.T) {
	ds := xDataset([]float64{1, 2, 3, 4}, []int{1, 1, 1, 1})
	for _, ss := range []StoppingStrategy{strategy(0, 0), strategy(1, 5), strategy(100, 100)} {
		root, err := Grow(context.Background(), ds, []feature.Feature{x}, ss)
		require.NoError(t, err)
		assert.Equal(t, &tree.Leaf{Class: 1}, root)
	}
}

func TestGrowSingleNumericThreshold(t *testing.T) {
	ds := xDataset(
		[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		[]int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1},
	)
	root, err := Grow(context.Background(), ds, []feature.Feature{x}, strategy(1, 5))
	require.NoError(t, err)

	in, ok := root.(*tree.Internal)
	require.True(t, ok, "root should be an internal node, got %T", root)
	assert.Equal(t, "x", in.Feature.Name())
	require.NotNil(t, in.Threshold)
	assert.Equal(t, 5.5, *in.Threshold)
	require.Len(t, in.Branches, 2)
	assert.Equal(t, feature.LessOrEqualKey, in.Branches[0].Criterion.Key())
	assert.Equal(t, &tree.Leaf{Class: 0}, in.Branches[0].Node)
	assert.Equal(t, feature.GreaterKey, in.Branches[1].Criterion.Key())
	assert.Equal(t, &tree.Leaf{Class: 1}, in.Branches[1].Node)

	assert.Equal(t, 0, tree.Classify(root, dataset.NewUnlabeledSample(numeric("x", 3))))
	assert.Equal(t, 1, tree.Classify(root, dataset.NewUnlabeledSample(numeric("x", 8))))
	assert.Equal(t, 1, tree.Classify(root, dataset.NewUnlabeledSample(nil)), "undefined values go above the threshold")
}

func TestGrowUnseenCategoryFallsBackToLeafMajority(t *testing.T) {
	ds := colorDataset(
		[]string{"red", "blue", "yellow", "red", "blue", "yellow", "red", "blue"},
		[]int{1, 0, 1, 1, 0, 1, 1, 0},
	)
	root, err := Grow(context.Background(), ds, []feature.Feature{color}, strategy(1, 5))
	require.NoError(t, err)

	in, ok := root.(*tree.Internal)
	require.True(t, ok, "root should be an internal node, got %T", root)
	assert.Nil(t, in.Threshold)
	assert.Equal(t, map[string]tree.Node{
		"red":    &tree.Leaf{Class: 1},
		"blue":   &tree.Leaf{Class: 0},
		"yellow": &tree.Leaf{Class: 1},
	}, in.Children())

	green := dataset.NewUnlabeledSample(map[string]feature.Value{"color": feature.Token("green")})
	assert.Equal(t, 1, tree.Classify(root, green))
	assert.Equal(t, 0, tree.Classify(root, dataset.NewUnlabeledSample(map[string]feature.Value{"color": feature.Token("blue")})))
}

func TestGrowUnseenCategoryTieGoesToSmallestLabel(t *testing.T) {
	ds := colorDataset(
		[]string{"red", "blue", "red", "blue", "red", "blue"},
		[]int{1, 0, 1, 0, 1, 0},
	)
	root, err := Grow(context.Background(), ds, []feature.Feature{color}, strategy(1, 5))
	require.NoError(t, err)
	green := dataset.NewUnlabeledSample(map[string]feature.Value{"color": feature.Token("green")})
	assert.Equal(t, 0, tree.Classify(root, green))
}

func TestGrowMinSamplesAboveCountIsMajorityLeaf(t *testing.T) {
	ds := xDataset(
		[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		[]int{0, 0, 0, 1, 1, 1, 1, 1, 1, 1},
	)
	root, err := Grow(context.Background(), ds, []feature.Feature{x}, strategy(100, 5))
	require.NoError(t, err)
	assert.Equal(t, &tree.Leaf{Class: 1}, root)
}

func TestGrowEmptyDatasetIsDefaultLeaf(t *testing.T) {
	root, err := Grow(context.Background(), dataset.New(nil), []feature.Feature{x}, strategy(0, 5))
	require.NoError(t, err)
	assert.Equal(t, &tree.Leaf{Class: tree.DefaultClass}, root)
}

func TestGrowWithoutFeaturesIsMajorityLeaf(t *testing.T) {
	ds := xDataset([]float64{1, 2, 3}, []int{2, 2, 0})
	root, err := Grow(context.Background(), ds, nil, strategy(0, 5))
	require.NoError(t, err)
	assert.Equal(t, &tree.Leaf{Class: 2}, root)
}

func TestGrowWithoutGainIsMajorityLeaf(t *testing.T) {
	ds := colorDataset([]string{"red", "red", "red"}, []int{0, 1, 1})
	root, err := Grow(context.Background(), ds, []feature.Feature{color}, strategy(0, 5))
	require.NoError(t, err)
	assert.Equal(t, &tree.Leaf{Class: 1}, root)
}

func TestGrowMajorityTieGoesToSmallestLabel(t *testing.T) {
	ds := xDataset([]float64{1, 2, 3, 4}, []int{3, 1, 3, 1})
	root, err := Grow(context.Background(), ds, []feature.Feature{x}, strategy(0, 0))
	require.NoError(t, err)
	assert.Equal(t, &tree.Leaf{Class: 1}, root)
}

func TestGrowReusesNumericFeatures(t *testing.T) {
	ds := xDataset([]float64{1, 2, 3, 4, 5, 6}, []int{0, 0, 1, 1, 0, 0})
	root, err := Grow(context.Background(), ds, []feature.Feature{x}, strategy(1, 5))
	require.NoError(t, err)

	in, ok := root.(*tree.Internal)
	require.True(t, ok)
	assert.Equal(t, 2.5, *in.Threshold)
	assert.Equal(t, &tree.Leaf{Class: 0}, in.Branches[0].Node)
	above, ok := in.Branches[1].Node.(*tree.Internal)
	require.True(t, ok, "the samples above 2.5 should be split again on x")
	assert.Equal(t, "x", above.Feature.Name())
	assert.Equal(t, 4.5, *above.Threshold)
	assert.Equal(t, &tree.Leaf{Class: 1}, above.Branches[0].Node)
	assert.Equal(t, &tree.Leaf{Class: 0}, above.Branches[1].Node)
}

func TestGrowRespectsMaxDepth(t *testing.T) {
	var values []float64
	var labels []int
	for i := 0; i < 40; i++ {
		values = append(values, float64(i))
		labels = append(labels, i%2)
	}
	ds := xDataset(values, labels)
	for _, maxDepth := range []int{0, 1, 2, 3} {
		root, err := Grow(context.Background(), ds, []feature.Feature{x}, strategy(1, maxDepth))
		require.NoError(t, err)
		assert.LessOrEqual(t, tree.New(root, nil).Stats().Depth, maxDepth)
	}
}

func TestGrowIsDeterministic(t *testing.T) {
	var samples []dataset.Sample
	colors := []string{"red", "blue", "green"}
	for i := 0; i < 30; i++ {
		samples = append(samples, dataset.NewSample(map[string]feature.Value{
			"x":     feature.Number(float64(i % 7)),
			"y":     feature.Number(float64(i % 5)),
			"color": feature.Token(colors[i%3]),
		}, (i*i)%3))
	}
	ds := dataset.New(samples)
	features := []feature.Feature{x, color, y}
	first, err := Grow(context.Background(), ds, features, strategy(1, 6))
	require.NoError(t, err)
	second, err := Grow(context.Background(), ds, features, strategy(1, 6))
	require.NoError(t, err)
	classes := feature.NewClasses("a", "b", "c")
	assert.Equal(t, tree.New(first, classes).String(), tree.New(second, classes).String())
	assert.Equal(t, tree.New(first, nil).Stats(), tree.New(second, nil).Stats())
}

func TestGrowDoesNotModifyDataset(t *testing.T) {
	ds := xDataset([]float64{4, 2, 3, 1}, []int{1, 0, 1, 0})
	before := ds.Samples()
	_, err := Grow(context.Background(), ds, []feature.Feature{x}, strategy(1, 5))
	require.NoError(t, err)
	assert.Equal(t, before, ds.Samples())
}

func TestGrowCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Grow(ctx, xDataset([]float64{1, 2}, []int{0, 1}), []feature.Feature{x}, strategy(0, 5))
	assert.Equal(t, context.Canceled, err)
}

func TestBranchOutRemovesCategoricalFeatureFromChildren(t *testing.T) {
	var samples []dataset.Sample
	for i, c := range []string{"red", "blue", "red", "blue"} {
		samples = append(samples, dataset.NewSample(map[string]feature.Value{
			"color": feature.Token(c),
			"shape": feature.Token("round"),
		}, i%2))
	}
	var placed tree.Node
	task := &queue.Task{
		Dataset:           dataset.New(samples),
		AvailableFeatures: []feature.Feature{shape, color},
		Place:             func(n tree.Node) { placed = n },
	}
	tasks, err := BranchOut(context.Background(), task, strategy(0, 5))
	require.NoError(t, err)
	in, ok := placed.(*tree.Internal)
	require.True(t, ok)
	assert.Equal(t, "color", in.Feature.Name())
	require.Len(t, tasks, 2)
	for _, st := range tasks {
		assert.Equal(t, []feature.Feature{shape}, st.AvailableFeatures)
		assert.Equal(t, 1, st.Depth)
		assert.Equal(t, 2, st.Dataset.Count())
	}
	tasks[1].Place(&tree.Leaf{Class: 7})
	assert.Equal(t, &tree.Leaf{Class: 7}, in.Branches[1].Node)
}

func TestBranchOutKeepsNumericFeatureForChildren(t *testing.T) {
	task := &queue.Task{
		Dataset:           xDataset([]float64{1, 2, 3, 4}, []int{0, 0, 1, 1}),
		AvailableFeatures: []feature.Feature{x, y},
		Depth:             2,
	}
	tasks, err := BranchOut(context.Background(), task, strategy(0, 5))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, st := range tasks {
		assert.Equal(t, []feature.Feature{x, y}, st.AvailableFeatures)
		assert.Equal(t, 3, st.Depth)
	}
}
