package dataset

import (
	"fmt"

	"github.com/Lizandraferrari/machine-learning/feature"
)

/*
Sample represents a record from which to learn: the values it has for
features along with the label of its class.
*/
type Sample interface {
	feature.Sample
	Label() int
}

type sample struct {
	featureValues map[string]feature.Value
	label         int
}

type unlabeledSample map[string]feature.Value

/*
NewSample takes a map of feature names to values and a label and returns a
sample. The map must not be modified afterwards.
*/
func NewSample(featureValues map[string]feature.Value, label int) Sample {
	return &sample{featureValues, label}
}

/*
NewUnlabeledSample takes a map of feature names to values and returns a
feature.Sample to classify. The map must not be modified afterwards.
*/
func NewUnlabeledSample(featureValues map[string]feature.Value) feature.Sample {
	return unlabeledSample(featureValues)
}

func (s *sample) ValueFor(f feature.Feature) feature.Value {
	return s.featureValues[f.Name()]
}

func (s *sample) Label() int {
	return s.label
}

func (s *sample) String() string {
	return fmt.Sprintf("[%v -> %d]", s.featureValues, s.label)
}

func (us unlabeledSample) ValueFor(f feature.Feature) feature.Value {
	return us[f.Name()]
}
