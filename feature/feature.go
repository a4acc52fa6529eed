package feature

import "fmt"

/*
Feature represents a property that can be observed on a record
*/
type Feature interface {
	Name() string
	Kind() Kind
	Valid(Value) (bool, error)
}

/*
CategoricalFeature represents a property that can be observed and that takes
opaque string tokens as values. The tokens it may take need not be declared
beforehand: the ones observed on a dataset are the ones a tree will branch on.
*/
type CategoricalFeature struct {
	name string
}

/*
NumericFeature represents a property that can be observed and that can take
a numeric value
*/
type NumericFeature struct {
	name string
}

/*
NewCategoricalFeature takes a name string and returns a categorical feature
with the given name.
*/
func NewCategoricalFeature(name string) *CategoricalFeature {
	return &CategoricalFeature{name}
}

/*
NewNumericFeature takes a name string and returns a numeric feature with
the given name.
*/
func NewNumericFeature(name string) *NumericFeature {
	return &NumericFeature{name}
}

/*
New takes a name and a kind and returns a feature of that kind.
*/
func New(name string, k Kind) Feature {
	if k == Numeric {
		return NewNumericFeature(name)
	}
	return NewCategoricalFeature(name)
}

/*
Name returns a string with the name of the feature
*/
func (cf *CategoricalFeature) Name() string {
	return cf.name
}

// Kind returns Categorical
func (cf *CategoricalFeature) Kind() Kind {
	return Categorical
}

/*
Valid receives a value and returns a boolean and an error. Undefined values and
categorical values are valid, anything else makes the method return false and
an error describing the reason.
*/
func (cf *CategoricalFeature) Valid(v Value) (bool, error) {
	if v.Kind() == Undefined || v.Kind() == Categorical {
		return true, nil
	}
	return false, fmt.Errorf("categorical feature %s expects a token value, got %v", cf.name, v)
}

func (cf *CategoricalFeature) String() string {
	return cf.name
}

/*
Name returns a string with the name of the feature
*/
func (nf *NumericFeature) Name() string {
	return nf.name
}

// Kind returns Numeric
func (nf *NumericFeature) Kind() Kind {
	return Numeric
}

/*
Valid receives a value and returns a boolean and an error. When the value is
numeric or undefined it returns true and nil, otherwise it returns false and an
error describing the reason.
*/
func (nf *NumericFeature) Valid(v Value) (bool, error) {
	if v.Kind() == Undefined || v.Kind() == Numeric {
		return true, nil
	}
	return false, fmt.Errorf("numeric feature %s expects a number, got %v", nf.name, v)
}

func (nf *NumericFeature) String() string {
	return nf.name
}

/*
Without takes a slice of features and a feature and returns a new slice with
the features in the same order except the given one. The given slice is not
modified.
*/
func Without(features []Feature, f Feature) []Feature {
	result := make([]Feature, 0, len(features))
	for _, sf := range features {
		if sf.Name() != f.Name() {
			result = append(result, sf)
		}
	}
	return result
}
