package id3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

func TestInformationGain(t *testing.T) {
	ds := xDataset([]float64{1, 2, 3, 4}, []int{0, 0, 1, 1})

	perfect := ds.Partition(x, floatPtr(2.5))
	assert.InDelta(t, 1.0, InformationGain(ds, perfect), 1e-12)

	useless := ds.Partition(x, floatPtr(10))
	assert.InDelta(t, 0.0, InformationGain(ds, useless), 1e-12)

	assert.Equal(t, 0.0, InformationGain(dataset.New(nil), nil))
}

func TestInformationGainIsZeroWhenProportionsDoNotChange(t *testing.T) {
	ds := xDataset([]float64{1, 2, 3, 4}, []int{0, 1, 0, 1})
	groups := ds.Partition(x, floatPtr(2.5))
	require.Len(t, groups, 2)
	assert.Equal(t, 2, groups[0].Dataset.Count())
	assert.Equal(t, 2, groups[1].Dataset.Count())
	assert.Equal(t, 0.0, InformationGain(ds, groups))
}

func TestBestSplitPureDataset(t *testing.T) {
	p := BestSplit(xDataset([]float64{1, 2, 3}, []int{4, 4, 4}), []feature.Feature{x})
	assert.Nil(t, p.Feature)
	assert.True(t, math.IsInf(p.InformationGain, -1))
}

func TestBestSplitSkipsUnusableFeatures(t *testing.T) {
	ds := xDataset([]float64{7, 7, 7}, []int{0, 1, 0})
	p := BestSplit(ds, []feature.Feature{x, color})
	assert.Nil(t, p.Feature, "a single distinct numeric value and an undefined feature cannot split")
}

func TestBestSplitPrefersHigherGain(t *testing.T) {
	var samples []dataset.Sample
	labels := []int{0, 0, 1, 1}
	colors := []string{"red", "blue", "red", "blue"}
	for i, l := range labels {
		samples = append(samples, dataset.NewSample(map[string]feature.Value{
			"x":     feature.Number(float64(i)),
			"color": feature.Token(colors[i]),
		}, l))
	}
	p := BestSplit(dataset.New(samples), []feature.Feature{color, x})
	require.NotNil(t, p.Feature)
	assert.Equal(t, "x", p.Feature.Name())
	require.NotNil(t, p.Threshold)
	assert.Equal(t, 1.5, *p.Threshold)
	assert.InDelta(t, 1.0, p.InformationGain, 1e-12)
	require.Len(t, p.Groups, 2)
	assert.Equal(t, 2, p.Groups[0].Dataset.Count())
	assert.Equal(t, 2, p.Groups[1].Dataset.Count())
}

func TestBestSplitTiesGoToFirstFeature(t *testing.T) {
	var samples []dataset.Sample
	for i, l := range []int{0, 0, 1, 1} {
		samples = append(samples, dataset.NewSample(map[string]feature.Value{
			"x": feature.Number(float64(i)),
			"y": feature.Number(float64(i)),
		}, l))
	}
	ds := dataset.New(samples)
	assert.Equal(t, "x", BestSplit(ds, []feature.Feature{x, y}).Feature.Name())
	assert.Equal(t, "y", BestSplit(ds, []feature.Feature{y, x}).Feature.Name())
}

func TestNumericPartitionTiesGoToSmallestThreshold(t *testing.T) {
	ds := xDataset([]float64{1, 2, 3, 4, 5, 6}, []int{0, 0, 1, 1, 0, 0})
	p := NewNumericPartition(ds, x)
	require.NotNil(t, p)
	assert.Equal(t, 2.5, *p.Threshold)
}

func TestNumericPartitionUsesDistinctValueMidpoints(t *testing.T) {
	ds := xDataset([]float64{1, 1, 1, 4, 4}, []int{0, 0, 0, 1, 1})
	p := NewNumericPartition(ds, x)
	require.NotNil(t, p)
	assert.Equal(t, 2.5, *p.Threshold)
	assert.Nil(t, NewNumericPartition(xDataset([]float64{3, 3}, []int{0, 1}), x))
}

func TestCategoricalPartitionGroupsUndefinedValues(t *testing.T) {
	samples := []dataset.Sample{
		dataset.NewSample(map[string]feature.Value{"color": feature.Token("red")}, 0),
		dataset.NewSample(map[string]feature.Value{}, 1),
		dataset.NewSample(map[string]feature.Value{"color": feature.Token("red")}, 0),
	}
	p := NewCategoricalPartition(dataset.New(samples), color)
	require.Len(t, p.Groups, 2)
	assert.Equal(t, "red", p.Groups[0].Criterion.Key())
	assert.Equal(t, feature.UndefinedKey, p.Groups[1].Criterion.Key())
	assert.InDelta(t, 0.9182958340544896, p.InformationGain, 1e-9)
}

func floatPtr(f float64) *float64 {
	return &f
}
