package tree

import (
	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

// DefaultClass is predicted when a sample leads to a node that cannot decide
const DefaultClass = 0

/*
Classify takes a node and a sample and returns the class label predicted for
the sample by the tree under the node.

On numeric nodes, samples whose value is at or below the threshold go down the
feature.LessOrEqualKey branch and the rest, those with undefined values
included, down the feature.GreaterKey branch.

On categorical nodes, samples go down the branch for their value's key. If
there is none, because the value was not seen when growing the node, the
prediction is the majority class among the node's children that are leaves
(ties going to the smallest class), or DefaultClass if none is.

Classify does not modify the tree, so it can be called concurrently.
*/
func Classify(n Node, s feature.Sample) int {
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Class
		case *Internal:
			v := s.ValueFor(node.Feature)
			key := v.Key()
			if node.Numeric() {
				key = feature.GreaterKey
				if feature.AtOrBelow(v, *node.Threshold) {
					key = feature.LessOrEqualKey
				}
			}
			child, ok := node.Child(key)
			if !ok {
				return node.leafMajority()
			}
			n = child
		default:
			return DefaultClass
		}
	}
}

func (n *Internal) leafMajority() int {
	counts := make(map[int]int)
	for _, b := range n.Branches {
		if l, ok := b.Node.(*Leaf); ok {
			counts[l.Class]++
		}
	}
	if len(counts) == 0 {
		return DefaultClass
	}
	return dataset.Majority(counts)
}
