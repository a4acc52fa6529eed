package id3

import (
	"math"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

/*
Partition represents a partition of a dataset according to a feature, and a
threshold for numeric features, into groups with an information gain to
predict the label
*/
type Partition struct {
	// Feature is nil for the partition returned when no split is possible
	Feature         feature.Feature
	Threshold       *float64
	Groups          []dataset.Group
	InformationGain float64
}

func noPartition() *Partition {
	return &Partition{InformationGain: math.Inf(-1)}
}

/*
InformationGain takes a dataset and the groups of a partition of it and
returns the entropy of the dataset minus the average entropy of the groups
weighted by their share of the dataset's samples.
*/
func InformationGain(ds *dataset.Dataset, groups []dataset.Group) float64 {
	count := ds.Count()
	if count == 0 {
		return 0.0
	}
	informationGain := ds.Entropy()
	totalCount := float64(count)
	for _, g := range groups {
		groupCount := g.Dataset.Count()
		if groupCount == 0 {
			continue
		}
		informationGain -= g.Dataset.Entropy() * float64(groupCount) / totalCount
	}
	return informationGain
}

/*
NewCategoricalPartition takes a dataset and a feature and returns the partition
of the dataset with a group for every value observed for the feature.
*/
func NewCategoricalPartition(ds *dataset.Dataset, f feature.Feature) *Partition {
	groups := ds.Partition(f, nil)
	return &Partition{f, nil, groups, InformationGain(ds, groups)}
}

/*
NewNumericPartition takes a dataset and a feature and returns the partition of
the dataset in two groups at the threshold that generates the most information
gain. Candidate thresholds are the midpoints between every pair of adjacent
distinct values observed for the feature, and ties are won by the smallest
threshold. The result is nil if fewer than two distinct values are observed.
*/
func NewNumericPartition(ds *dataset.Dataset, f feature.Feature) *Partition {
	values := ds.NumericValues(f)
	if len(values) < 2 {
		return nil
	}
	var result *Partition
	for i, v := range values[1:] {
		threshold := (values[i] + v) / 2.0
		groups := ds.Partition(f, &threshold)
		informationGain := InformationGain(ds, groups)
		if result == nil || informationGain > result.InformationGain {
			result = &Partition{f, &threshold, groups, informationGain}
		}
	}
	return result
}

/*
BestSplit takes a dataset and a slice of candidate features and returns the
partition of the dataset with the highest information gain.

The kind of every feature is the kind of the value the first sample defining it
has. Features no sample defines are skipped, as are numeric features with fewer
than two distinct values.

Ties are won by the partition found first, considering features in the order
they are given.

When the dataset is pure, or no feature can partition it, the partition
returned has no feature and an information gain of -Inf.
*/
func BestSplit(ds *dataset.Dataset, features []feature.Feature) *Partition {
	best := noPartition()
	if ds.Entropy() == 0 {
		return best
	}
	for _, f := range features {
		var p *Partition
		switch ds.KindOf(f) {
		case feature.Numeric:
			p = NewNumericPartition(ds, f)
		case feature.Categorical:
			p = NewCategoricalPartition(ds, f)
		default:
			continue
		}
		if p != nil && p.InformationGain > best.InformationGain {
			best = p
		}
	}
	return best
}
