package tree

import (
	"github.com/Lizandraferrari/machine-learning/feature"
)

/*
Node is a node of a tree: either a *Leaf or an *Internal node.
*/
type Node interface {
	isNode()
}

/*
Leaf is a terminal node predicting a class label
*/
type Leaf struct {
	Class int
}

/*
Internal is a node deciding on the value of a feature which of its branches
a sample continues down.
*/
type Internal struct {
	// The feature the decision is made on.
	Feature feature.Feature
	// The threshold for decisions on numeric features, nil for
	// categorical ones.
	Threshold *float64
	// The branches under this node. Categorical nodes have one per
	// value observed while growing the tree, in the order they were
	// found. Numeric nodes have exactly two, the one for the
	// feature.LessOrEqualKey first and the one for feature.GreaterKey.
	Branches []Branch
}

/*
Branch is an edge from an internal node to one of its children: the criterion
samples must satisfy to follow it and the node it leads to. Every node is
owned by the only branch leading to it.
*/
type Branch struct {
	Criterion feature.Criterion
	Node      Node
}

func (*Leaf) isNode()     {}
func (*Internal) isNode() {}

/*
NewInternal takes a feature, an optional threshold and the criteria for its
branches and returns an internal node whose branches still lead nowhere.
*/
func NewInternal(f feature.Feature, threshold *float64, criteria []feature.Criterion) *Internal {
	n := &Internal{Feature: f, Threshold: threshold, Branches: make([]Branch, 0, len(criteria))}
	for _, c := range criteria {
		n.Branches = append(n.Branches, Branch{Criterion: c})
	}
	return n
}

// Numeric returns whether the node decides on a numeric threshold
func (n *Internal) Numeric() bool {
	return n.Threshold != nil
}

/*
Child takes a branch key and returns the node the branch with that key leads
to and true, or nil and false if the node has no such branch.
*/
func (n *Internal) Child(key string) (Node, bool) {
	for _, b := range n.Branches {
		if b.Criterion.Key() == key {
			return b.Node, b.Node != nil
		}
	}
	return nil, false
}

/*
Children returns a new map from branch key to the node the branch leads to.
Branches leading nowhere are left out.
*/
func (n *Internal) Children() map[string]Node {
	result := make(map[string]Node, len(n.Branches))
	for _, b := range n.Branches {
		if b.Node == nil {
			continue
		}
		result[b.Criterion.Key()] = b.Node
	}
	return result
}
