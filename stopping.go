package id3

import (
	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

// StoppingStrategy holds the configuration
// for when a node must not be partitioned
// and become a leaf instead.
type StoppingStrategy struct {
	// MinSamples is the largest number of samples
	// a node can have and still become a leaf
	// without considering a partition. In other
	// words, nodes need more than MinSamples samples
	// to be partitioned.
	MinSamples int
	// MaxDepth is the depth at which nodes
	// always become leaves. The root has depth 0.
	MaxDepth int
	// MinimumGain is the information gain a
	// partition must exceed to be used. Gains
	// at or below it are considered noise.
	MinimumGain float64
}

// DefaultStoppingStrategy returns a StoppingStrategy
// with a MinSamples of 5, a MaxDepth of 10 and a
// MinimumGain of 1e-9.
func DefaultStoppingStrategy() StoppingStrategy {
	return StoppingStrategy{MinSamples: 5, MaxDepth: 10, MinimumGain: 1e-9}
}

/*
Stop takes a dataset, the features available to partition it and the depth of
its node and returns whether the node must become a leaf without looking for a
partition: because there are no features left, because the dataset has
MinSamples or fewer samples or because the depth reached MaxDepth.
*/
func (ss StoppingStrategy) Stop(ds *dataset.Dataset, features []feature.Feature, depth int) bool {
	return len(features) == 0 || ds.Count() <= ss.MinSamples || depth >= ss.MaxDepth
}

/*
Insufficient takes a partition and returns whether it must be discarded because
it has no feature or an information gain at or below MinimumGain.
*/
func (ss StoppingStrategy) Insufficient(p *Partition) bool {
	return p == nil || p.Feature == nil || p.InformationGain <= ss.MinimumGain
}
