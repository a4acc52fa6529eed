package feature

import (
	"fmt"
	"strconv"
)

const (
	// LessOrEqualKey is the branch key for samples whose numeric value is at or below a threshold
	LessOrEqualKey = "<="
	// GreaterKey is the branch key for samples whose numeric value is above a threshold
	// or undefined
	GreaterKey = ">"
)

/*
Criterion represents a constraint on a feature that selects one branch of a
decision node.

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the sample satisfies the feature criterion.

Its Feature method returns the feature on which the criterion is applied.

Its Key method returns the branch key the criterion selects.
*/
type Criterion interface {
	Feature() Feature
	Key() string
	SatisfiedBy(sample Sample) bool
}

/*
ThresholdCriterion represents a constraint on a numeric feature: its value
must be at or below a threshold, or it must be above it.
*/
type ThresholdCriterion interface {
	Criterion
	Threshold() float64
	Above() bool
}

/*
CategoricalCriterion represents a constraint on a categorical feature, a
value it must take.

Its Value method returns the branch key of the value to which the feature is
constrained.
*/
type CategoricalCriterion interface {
	Criterion
	Value() string
}

type thresholdCriterion struct {
	feature   Feature
	threshold float64
	above     bool
}

type categoricalCriterion struct {
	feature Feature
	value   string
}

/*
NewThresholdCriterion takes a feature, a threshold and a boolean and returns a
ThresholdCriterion satisfied by samples whose value for the feature is at or
below the threshold when above is false, and by the rest of samples when above
is true. Samples without a numeric value for the feature are treated as if
their value were +Inf.
*/
func NewThresholdCriterion(feature Feature, threshold float64, above bool) ThresholdCriterion {
	return &thresholdCriterion{feature, threshold, above}
}

/*
NewCategoricalCriterion takes a feature and a branch key and returns a
CategoricalCriterion satisfied by samples whose value key for the feature is
the given one. Samples with an undefined value satisfy the criterion for
UndefinedKey.
*/
func NewCategoricalCriterion(feature Feature, value string) CategoricalCriterion {
	return &categoricalCriterion{feature, value}
}

/*
Feature returns the feature to which the constraint applies.
*/
func (tc *thresholdCriterion) Feature() Feature {
	return tc.feature
}

func (tc *thresholdCriterion) Key() string {
	if tc.above {
		return GreaterKey
	}
	return LessOrEqualKey
}

func (tc *thresholdCriterion) SatisfiedBy(sample Sample) bool {
	return AtOrBelow(sample.ValueFor(tc.feature), tc.threshold) != tc.above
}

func (tc *thresholdCriterion) Threshold() float64 {
	return tc.threshold
}

func (tc *thresholdCriterion) Above() bool {
	return tc.above
}

func (tc *thresholdCriterion) String() string {
	return fmt.Sprintf("%s %s %s", tc.feature.Name(), tc.Key(), strconv.FormatFloat(tc.threshold, 'g', -1, 64))
}

/*
Feature returns the feature to which the constraint applies.
*/
func (cc *categoricalCriterion) Feature() Feature {
	return cc.feature
}

func (cc *categoricalCriterion) Key() string {
	return cc.value
}

func (cc *categoricalCriterion) SatisfiedBy(sample Sample) bool {
	return sample.ValueFor(cc.feature).Key() == cc.value
}

func (cc *categoricalCriterion) Value() string {
	return cc.value
}

func (cc *categoricalCriterion) String() string {
	if cc.value == UndefinedKey {
		return fmt.Sprintf("%s not defined", cc.feature.Name())
	}
	return fmt.Sprintf("%s is %s", cc.feature.Name(), cc.value)
}

/*
AtOrBelow returns whether the value is numeric and at or below the threshold.
Undefined and categorical values are never at or below any threshold.
*/
func AtOrBelow(v Value, threshold float64) bool {
	f, ok := v.Float()
	return ok && f <= threshold
}
