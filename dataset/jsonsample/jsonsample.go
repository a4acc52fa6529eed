/*
Package jsonsample reads records to classify from JSON objects.
*/
package jsonsample

import (
	"bytes"
	"io"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type number interface {
	Float64() (float64, error)
	String() string
}

/*
Read takes an io.Reader with a JSON object and a slice of features and returns
a sample with the values the object has for the features or an error.

Numbers are numeric values, except for categorical features that take them as
tokens. Strings are parsed according to the kind of their feature, so numeric
features accept numbers in strings, and '?' or empty strings are undefined.
Booleans are tokens, and null or absent properties are undefined. Properties
not matching any feature are ignored.
*/
func Read(r io.Reader, features []feature.Feature) (feature.Sample, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var doc map[string]interface{}
	err := decoder.Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "decoding JSON record")
	}
	values := make(map[string]feature.Value, len(features))
	for _, f := range features {
		v, err := parseValue(doc[f.Name()], f)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %s", f.Name())
		}
		if v.Defined() {
			values[f.Name()] = v
		}
	}
	return dataset.NewUnlabeledSample(values), nil
}

// Decode is like Read on a slice of bytes
func Decode(data []byte, features []feature.Feature) (feature.Sample, error) {
	return Read(bytes.NewReader(data), features)
}

/*
ReadFile takes a filepath string and a slice of features, opens the file and
uses Read to return the sample in it or an error.
*/
func ReadFile(filepath string, features []feature.Feature) (feature.Sample, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading record")
	}
	defer f.Close()
	s, err := Read(f, features)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing JSON file %s", filepath)
	}
	return s, nil
}

func parseValue(raw interface{}, f feature.Feature) (feature.Value, error) {
	switch v := raw.(type) {
	case nil:
		return feature.Value{}, nil
	case number:
		if f.Kind() == feature.Categorical {
			return feature.Token(v.String()), nil
		}
		n, err := v.Float64()
		if err != nil {
			return feature.Value{}, err
		}
		return feature.Number(n), nil
	case float64:
		if f.Kind() == feature.Categorical {
			return feature.Token(strconv.FormatFloat(v, 'f', -1, 64)), nil
		}
		return feature.Number(v), nil
	case string:
		return feature.ParseValue(v, f.Kind())
	case bool:
		if f.Kind() == feature.Numeric {
			return feature.Value{}, errors.Errorf("expected a number, got %v", v)
		}
		return feature.Token(strconv.FormatBool(v)), nil
	}
	return feature.Value{}, errors.Errorf("unexpected value of type %T", raw)
}
