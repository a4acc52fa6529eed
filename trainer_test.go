package id3

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

func separableDataset(n int) *dataset.Dataset {
	var values []float64
	var labels []int
	for i := 0; i < n; i++ {
		values = append(values, float64(i))
		label := 0
		if i >= n/2 {
			label = 1
		}
		labels = append(labels, label)
	}
	return xDataset(values, labels)
}

func TestFormatAccuracy(t *testing.T) {
	assert.Equal(t, "87.50%", FormatAccuracy(0.875))
	assert.Equal(t, "100.00%", FormatAccuracy(1))
	assert.Equal(t, "0.00%", FormatAccuracy(0))
	assert.Equal(t, "33.33%", (&Result{Accuracy: 1.0 / 3.0}).FormatAccuracy())
}

func TestTrainSplitsAndTests(t *testing.T) {
	ds := separableDataset(50)
	ss := strategy(1, 8)
	trainer := &Trainer{Strategy: &ss, Rand: rand.New(rand.NewSource(1))}
	result, err := trainer.Train(context.Background(), ds, []feature.Feature{x}, feature.NewClasses("low", "high"))
	require.NoError(t, err)
	assert.Equal(t, 40, result.Train.Count())
	assert.Equal(t, 10, result.Test.Count())
	assert.GreaterOrEqual(t, result.Accuracy, 0.7, "a separable dataset should be learnt almost perfectly")
	assert.Equal(t, 50, ds.Count())
	assert.Equal(t, "low", result.Tree.PredictClass(dataset.NewUnlabeledSample(numeric("x", 0))).Name)
	assert.Equal(t, "high", result.Tree.PredictClass(dataset.NewUnlabeledSample(numeric("x", 49))).Name)
}

func TestTrainIsReproducibleWithSeededSource(t *testing.T) {
	ds := separableDataset(30)
	first, err := (&Trainer{TrainRatio: 0.5, Rand: rand.New(rand.NewSource(42))}).Train(context.Background(), ds, []feature.Feature{x}, nil)
	require.NoError(t, err)
	second, err := (&Trainer{TrainRatio: 0.5, Rand: rand.New(rand.NewSource(42))}).Train(context.Background(), ds, []feature.Feature{x}, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Train.Samples(), second.Train.Samples())
	assert.Equal(t, first.Tree.String(), second.Tree.String())
	assert.Equal(t, first.Accuracy, second.Accuracy)
}

func TestTrainWithEmptyTestSet(t *testing.T) {
	result, err := (&Trainer{TrainRatio: 1}).Train(context.Background(), separableDataset(10), []feature.Feature{x}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Test.Count())
	assert.Equal(t, 0.0, result.Accuracy)
}

func TestTrainLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	trainer := &Trainer{Logger: zap.New(core), Rand: rand.New(rand.NewSource(3))}
	_, err := trainer.Train(context.Background(), separableDataset(20), []feature.Feature{x}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("growing tree").Len())
	grown := logs.FilterMessage("tree grown").All()
	require.Len(t, grown, 1)
	assert.Contains(t, grown[0].ContextMap(), "nodes")
}

func TestTrainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Trainer{}).Train(ctx, separableDataset(10), []feature.Feature{x}, nil)
	assert.Equal(t, context.Canceled, err)
}

func TestDepthCurve(t *testing.T) {
	var values []float64
	var labels []int
	for i := 0; i < 60; i++ {
		values = append(values, float64(i))
		labels = append(labels, (i/10)%2)
	}
	ss := strategy(1, 8)
	trainer := &Trainer{Strategy: &ss, Rand: rand.New(rand.NewSource(7))}
	curve, err := trainer.DepthCurve(context.Background(), xDataset(values, labels), []feature.Feature{x}, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, curve.Depths)
	require.Len(t, curve.TrainAccuracy, 4)
	require.Len(t, curve.TestAccuracy, 4)
	for i := 1; i < 4; i++ {
		assert.GreaterOrEqual(t, curve.TrainAccuracy[i], curve.TrainAccuracy[i-1], "training accuracy should not drop with depth")
	}
	assert.Equal(t, 8, ss.MaxDepth, "the trainer's strategy must not be modified")
}
