package dataset

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Lizandraferrari/machine-learning/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	x     = feature.NewNumericFeature("x")
	color = feature.NewCategoricalFeature("color")
)

func numericSamples(values []float64, labels []int) []Sample {
	var result []Sample
	for i, v := range values {
		result = append(result, NewSample(map[string]feature.Value{"x": feature.Number(v)}, labels[i]))
	}
	return result
}

func labelled(labels ...int) *Dataset {
	var samples []Sample
	for _, l := range labels {
		samples = append(samples, NewSample(map[string]feature.Value{}, l))
	}
	return New(samples)
}

func TestEntropyOfPureDatasetIsZero(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		labels := make([]int, n)
		for i := range labels {
			labels[i] = 2
		}
		assert.Equal(t, 0.0, labelled(labels...).Entropy())
	}
}

func TestEntropyOfEvenSplit(t *testing.T) {
	assert.Equal(t, 1.0, labelled(0, 1, 0, 1).Entropy())
	assert.Equal(t, 2.0, labelled(0, 1, 2, 3).Entropy())
	assert.InDelta(t, math.Log2(3), labelled(0, 1, 2, 0, 1, 2).Entropy(), 1e-12)
}

func TestEntropyOfEmptyDataset(t *testing.T) {
	assert.Equal(t, 0.0, New(nil).Entropy())
	assert.Equal(t, 0.0, Entropy(map[int]int{}))
}

func TestMajorityBreaksTiesWithSmallestLabel(t *testing.T) {
	assert.Equal(t, 1, labelled(2, 1, 1, 2, 0).MajorityLabel())
	assert.Equal(t, 2, labelled(2, 2, 1).MajorityLabel())
	assert.Equal(t, 0, Majority(map[int]int{}))
	assert.Equal(t, 3, Majority(map[int]int{5: 1, 3: 1}))
}

func TestPure(t *testing.T) {
	label, ok := labelled(1, 1, 1).Pure()
	assert.True(t, ok)
	assert.Equal(t, 1, label)
	_, ok = labelled(1, 0).Pure()
	assert.False(t, ok)
	_, ok = New(nil).Pure()
	assert.False(t, ok)
}

func TestNumericPartitionIsExhaustiveAndDisjoint(t *testing.T) {
	samples := numericSamples([]float64{1, 5, 5, 6, 10}, []int{0, 0, 0, 1, 1})
	samples = append(samples, NewSample(map[string]feature.Value{}, 1))
	ds := New(samples)
	threshold := 5.0
	groups := ds.Partition(x, &threshold)
	require.Len(t, groups, 2)
	assert.Equal(t, feature.LessOrEqualKey, groups[0].Criterion.Key())
	assert.Equal(t, feature.GreaterKey, groups[1].Criterion.Key())
	assert.Equal(t, 3, groups[0].Dataset.Count())
	assert.Equal(t, 3, groups[1].Dataset.Count())
	assertSameSamples(t, ds, groups)
}

func TestCategoricalPartitionGroupsByObservedValues(t *testing.T) {
	ds := New([]Sample{
		NewSample(map[string]feature.Value{"color": feature.Token("red")}, 0),
		NewSample(map[string]feature.Value{"color": feature.Token("blue")}, 1),
		NewSample(map[string]feature.Value{"color": feature.Token("red")}, 0),
		NewSample(map[string]feature.Value{}, 1),
	})
	groups := ds.Partition(color, nil)
	require.Len(t, groups, 3)
	assert.Equal(t, "red", groups[0].Criterion.Key())
	assert.Equal(t, "blue", groups[1].Criterion.Key())
	assert.Equal(t, feature.UndefinedKey, groups[2].Criterion.Key())
	assert.Equal(t, 2, groups[0].Dataset.Count())
	assertSameSamples(t, ds, groups)
}

func TestCategoricalPartitionKeepsQuestionMarkTokensWithMissingValues(t *testing.T) {
	ds := New([]Sample{
		NewSample(map[string]feature.Value{"color": feature.Token("?")}, 0),
		NewSample(map[string]feature.Value{}, 1),
		NewSample(map[string]feature.Value{"color": feature.Token("red")}, 0),
	})
	groups := ds.Partition(color, nil)
	require.Len(t, groups, 2)
	assert.Equal(t, feature.UndefinedKey, groups[0].Criterion.Key())
	assert.Equal(t, 2, groups[0].Dataset.Count())
	for _, s := range groups[0].Dataset.Samples() {
		assert.False(t, s.ValueFor(color).Defined())
	}
	assert.Equal(t, "red", groups[1].Criterion.Key())
}

func TestPartitionGroupsAreTheSubsetsOfTheirCriteria(t *testing.T) {
	samples := numericSamples([]float64{1, 5, 6, 10}, []int{0, 0, 1, 1})
	samples = append(samples,
		NewSample(map[string]feature.Value{"color": feature.Token("red")}, 0),
		NewSample(map[string]feature.Value{"color": feature.Token("blue")}, 1),
	)
	ds := New(samples)
	threshold := 5.5
	for _, groups := range [][]Group{ds.Partition(x, &threshold), ds.Partition(color, nil)} {
		for _, g := range groups {
			assert.Equal(t, g.Dataset.Samples(), ds.SubsetWith(g.Criterion).Samples(), g.Criterion.Key())
		}
	}
}

func assertSameSamples(t *testing.T, ds *Dataset, groups []Group) {
	seen := make(map[Sample]int)
	for _, g := range groups {
		for _, s := range g.Dataset.Samples() {
			seen[s]++
		}
	}
	assert.Len(t, seen, ds.Count())
	for _, s := range ds.Samples() {
		assert.Equal(t, 1, seen[s])
	}
}

func TestNumericValuesAreDistinctAndSorted(t *testing.T) {
	ds := New(numericSamples([]float64{3, 1, 3, 2, 1}, []int{0, 0, 0, 0, 0}))
	assert.Equal(t, []float64{1, 2, 3}, ds.NumericValues(x))
	assert.Equal(t, feature.Numeric, ds.KindOf(x))
	assert.Equal(t, feature.Undefined, ds.KindOf(color))
}

func TestShuffleIsAPermutationAndLeavesDatasetUntouched(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	ds := New(numericSamples(values, make([]int, len(values))))
	original := ds.Samples()
	shuffled := ds.Shuffle(rand.New(rand.NewSource(42)))
	assert.Equal(t, original, ds.Samples())
	assert.ElementsMatch(t, original, shuffled.Samples())
}

func TestSplit(t *testing.T) {
	ds := labelled(0, 1, 2, 0, 1)
	train, test := ds.Split(0.8)
	assert.Equal(t, 4, train.Count())
	assert.Equal(t, 1, test.Count())
	assert.Equal(t, ds.Sample(4), test.Sample(0))
	train, test = ds.Split(1.5)
	assert.Equal(t, 5, train.Count())
	assert.Equal(t, 0, test.Count())
}
