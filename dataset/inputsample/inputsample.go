/*
Package inputsample provides an implementation of feature.Sample that is read
from an io.Reader as its values are needed.
*/
package inputsample

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/Lizandraferrari/machine-learning/feature"
)

// Error represents an error reading a sample
type Error string

const (
	// ErrUndefinedFeature is the error recorded when a value is asked for a
	// feature the sample has no information about
	ErrUndefinedFeature = Error("no information about feature, do not know how to read its value")
	// ErrNoInput is the error recorded when the reader ends before a valid
	// value is read
	ErrNoInput = Error("EOF when requesting value")
)

func (e Error) Error() string {
	return string(e)
}

/*
Sample represents a sample whose feature values
are retrieved from a reader. A feature value will be
requested using a FeatureValueRequester before reading it.
*/
type Sample struct {
	obtainedValues        map[string]feature.Value
	undefinedValue        string
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              map[string]feature.Feature
	err                   error
}

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, string) error
}

/*
New takes an io.Reader, a slice of features, a
FeatureValueRequester and an undefinedValue coding string
and returns a Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then parsing the values from the reader. Values are read only
once per feature and only when they are first asked for, so
classifying the sample reads only the values the decisions
on its path need.

The parsing expects each value to be presented ending with the
'\n' character, that is in new lines. Also, the undefinedValue
string or an empty line will be interpreted as an undefined value.

For a numeric feature, lines will be read from the reader until
a line containing a valid float64 number is found, rejecting
the rest with the FeatureValueRequester's RejectValueFor method.
For a categorical feature, any line is a valid token.
*/
func New(r io.Reader, features []feature.Feature, featureValueRequester FeatureValueRequester, undefinedValue string) *Sample {
	featuresByName := make(map[string]feature.Feature, len(features))
	for _, f := range features {
		featuresByName[f.Name()] = f
	}
	return &Sample{
		obtainedValues:        make(map[string]feature.Value),
		undefinedValue:        undefinedValue,
		scanner:               bufio.NewScanner(r),
		featureValueRequester: featureValueRequester,
		features:              featuresByName,
	}
}

/*
ValueFor returns the value of the sample for the given feature, reading it if
it was not read before. If reading fails, the value is undefined and the
error is available through the Err method. Once an error happens no more
values are read.
*/
func (rs *Sample) ValueFor(f feature.Feature) feature.Value {
	value, ok := rs.obtainedValues[f.Name()]
	if ok || rs.err != nil {
		return value
	}
	featureWithInfo, ok := rs.features[f.Name()]
	if !ok {
		rs.err = errors.Wrapf(ErrUndefinedFeature, "feature %s", f.Name())
		return feature.Value{}
	}
	value, err := rs.read(featureWithInfo)
	if err != nil {
		rs.err = err
		return feature.Value{}
	}
	rs.obtainedValues[f.Name()] = value
	return value
}

// Err returns the first error that happened reading values, if any
func (rs *Sample) Err() error {
	return rs.err
}

// Values returns a new map with the values read so far by feature name
func (rs *Sample) Values() map[string]feature.Value {
	result := make(map[string]feature.Value, len(rs.obtainedValues))
	for k, v := range rs.obtainedValues {
		result[k] = v
	}
	return result
}

func (rs *Sample) read(f feature.Feature) (feature.Value, error) {
	err := rs.featureValueRequester.RequestValueFor(f)
	if err != nil {
		return feature.Value{}, err
	}
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		if line == rs.undefinedValue || line == "" {
			return feature.Value{}, nil
		}
		value, err := feature.ParseValue(line, f.Kind())
		if err == nil {
			return value, nil
		}
		err = rs.featureValueRequester.RejectValueFor(f, line)
		if err != nil {
			return feature.Value{}, err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return feature.Value{}, errors.Wrap(err, "reading value")
	}
	return feature.Value{}, ErrNoInput
}
