package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/Lizandraferrari/machine-learning/feature"
)

/*
Dataset represents an immutable ordered collection of samples.

Its Entropy method returns the entropy of the dataset labels: a measure of the
disinformation we have on the classes of samples that belong to it.

Its Partition method splits it into disjoint datasets according to a feature.

None of its methods modify the dataset: those deriving new datasets from it
return new ones sharing the samples.
*/
type Dataset struct {
	samples     []Sample
	entropyOnce sync.Once
	entropy     float64
}

/*
Group is one of the parts in which a dataset is partitioned: the criterion
samples in the part satisfy and the dataset they make up.
*/
type Group struct {
	Criterion feature.Criterion
	Dataset   *Dataset
}

/*
New takes a slice of samples and returns a dataset built with them. The slice
is copied, so it can be reused by the caller.
*/
func New(samples []Sample) *Dataset {
	return &Dataset{samples: append([]Sample(nil), samples...)}
}

func newShared(samples []Sample) *Dataset {
	return &Dataset{samples: samples}
}

// Count returns the number of samples in the dataset
func (ds *Dataset) Count() int {
	return len(ds.samples)
}

// Samples returns a copy of the slice of samples in the dataset
func (ds *Dataset) Samples() []Sample {
	return append([]Sample(nil), ds.samples...)
}

// Sample returns the ith sample of the dataset
func (ds *Dataset) Sample(i int) Sample {
	return ds.samples[i]
}

/*
CountLabels returns a new map with the number of samples in the dataset for
each label present on it.
*/
func (ds *Dataset) CountLabels() map[int]int {
	result := make(map[int]int)
	for _, s := range ds.samples {
		result[s.Label()]++
	}
	return result
}

/*
Entropy returns the Shannon entropy in bits of the labels in the dataset.
An empty dataset has an entropy of 0.
*/
func (ds *Dataset) Entropy() float64 {
	ds.entropyOnce.Do(func() {
		ds.entropy = Entropy(ds.CountLabels())
	})
	return ds.entropy
}

/*
Entropy takes a map with the number of occurrences of each label and returns
the Shannon entropy in bits of the proportions they represent. An empty map
has an entropy of 0.
*/
func Entropy(labelCounts map[int]int) float64 {
	var total int
	for _, c := range labelCounts {
		total += c
	}
	if total == 0 {
		return 0.0
	}
	var result float64
	for _, label := range SortedLabels(labelCounts) {
		c := labelCounts[label]
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		result -= p * math.Log2(p)
	}
	return result
}

/*
Pure returns the label shared by all the samples in the dataset and true, or
0 and false if the dataset is empty or has samples with different labels.
*/
func (ds *Dataset) Pure() (int, bool) {
	if len(ds.samples) == 0 {
		return 0, false
	}
	label := ds.samples[0].Label()
	for _, s := range ds.samples[1:] {
		if s.Label() != label {
			return 0, false
		}
	}
	return label, true
}

/*
MajorityLabel returns the most frequent label in the dataset. Ties are broken
in favour of the smallest label. An empty dataset has a majority label of 0.
*/
func (ds *Dataset) MajorityLabel() int {
	return Majority(ds.CountLabels())
}

/*
Majority takes a map with the number of occurrences of each label and returns
the most frequent one. Labels are compared in ascending order and the first
one reaching the highest count wins, so ties go to the smallest label.
An empty map has a majority of 0.
*/
func Majority(labelCounts map[int]int) int {
	var result, best int
	for i, label := range SortedLabels(labelCounts) {
		if i == 0 || labelCounts[label] > best {
			result = label
			best = labelCounts[label]
		}
	}
	return result
}

// SortedLabels returns the labels in the given map of counts in ascending order
func SortedLabels(labelCounts map[int]int) []int {
	labels := make([]int, 0, len(labelCounts))
	for l := range labelCounts {
		labels = append(labels, l)
	}
	sort.Ints(labels)
	return labels
}

/*
KindOf returns the kind of the value the first sample defining the given
feature has for it, or feature.Undefined if no sample defines it.
*/
func (ds *Dataset) KindOf(f feature.Feature) feature.Kind {
	for _, s := range ds.samples {
		if v := s.ValueFor(f); v.Defined() {
			return v.Kind()
		}
	}
	return feature.Undefined
}

/*
NumericValues returns the distinct numeric values the samples in the dataset
have for the given feature, sorted in ascending order. Samples without a
numeric value for it are ignored.
*/
func (ds *Dataset) NumericValues(f feature.Feature) []float64 {
	encountered := make(map[float64]bool)
	var result []float64
	for _, s := range ds.samples {
		v, ok := s.ValueFor(f).Float()
		if !ok || encountered[v] {
			continue
		}
		encountered[v] = true
		result = append(result, v)
	}
	sort.Float64s(result)
	return result
}

/*
Partition takes a feature and an optional threshold and returns the groups
into which the dataset's samples fall.

Without threshold, there will be a group for every distinct value key found
for the feature on the dataset, in the order they are first found. Samples with
an undefined value fall into the group for feature.UndefinedKey.

With a threshold, there will be exactly two groups, first the one for samples
with values at or below the threshold and then the one for the rest, samples
with undefined values included.

Groups are disjoint and together contain every sample of the dataset once.
*/
func (ds *Dataset) Partition(f feature.Feature, threshold *float64) []Group {
	if threshold != nil {
		le := feature.NewThresholdCriterion(f, *threshold, false)
		gt := feature.NewThresholdCriterion(f, *threshold, true)
		var leSamples, gtSamples []Sample
		for _, s := range ds.samples {
			if le.SatisfiedBy(s) {
				leSamples = append(leSamples, s)
			} else {
				gtSamples = append(gtSamples, s)
			}
		}
		return []Group{
			{le, newShared(leSamples)},
			{gt, newShared(gtSamples)},
		}
	}
	var keys []string
	groups := make(map[string][]Sample)
	for _, s := range ds.samples {
		k := s.ValueFor(f).Key()
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], s)
	}
	result := make([]Group, 0, len(keys))
	for _, k := range keys {
		result = append(result, Group{feature.NewCategoricalCriterion(f, k), newShared(groups[k])})
	}
	return result
}

/*
SubsetWith takes a criterion and returns a dataset with the samples that
satisfy it.
*/
func (ds *Dataset) SubsetWith(c feature.Criterion) *Dataset {
	var samples []Sample
	for _, s := range ds.samples {
		if c.SatisfiedBy(s) {
			samples = append(samples, s)
		}
	}
	return newShared(samples)
}

/*
Shuffle takes a source of randomness and returns a new dataset with the
samples of this one in a uniformly random order given by a permutation of
their indices. The dataset itself is left untouched.
*/
func (ds *Dataset) Shuffle(r *rand.Rand) *Dataset {
	samples := make([]Sample, len(ds.samples))
	for i, j := range r.Perm(len(ds.samples)) {
		samples[i] = ds.samples[j]
	}
	return newShared(samples)
}

/*
Split takes a ratio between 0 and 1 and returns two datasets: one with the
first floor(n*ratio) samples of this one and another with the rest.
Ratios out of range are clamped.
*/
func (ds *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	n := len(ds.samples)
	cut := int(math.Floor(float64(n) * ratio))
	if cut < 0 {
		cut = 0
	}
	if cut > n {
		cut = n
	}
	return newShared(ds.samples[:cut:cut]), newShared(ds.samples[cut:])
}

func (ds *Dataset) String() string {
	return fmt.Sprintf("[ %v ]", ds.Count())
}
