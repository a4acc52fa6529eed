/*
Package yaml provides methods to parse the metadata of a dataset, that is the
label to predict, its classes and the features available, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/Lizandraferrari/machine-learning/feature"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

/*
Metadata describes a dataset: the name of the column holding the label, the
classes that label can take and, optionally, the kind of each feature.
*/
type Metadata struct {
	Label    string
	Classes  feature.Classes
	Features []feature.Feature
}

type metadataDoc struct {
	Label    string        `yaml:"label"`
	Classes  []interface{} `yaml:"classes"`
	Features yaml.MapSlice `yaml:"features"`
}

/*
ReadMetadata takes a slice of bytes with a metadata document in YAML and
returns the Metadata parsed from it or an error.

The YAML is expected to be an object with the following properties:
  - label: the name of the column with the class of each record (required)
  - classes: a list with the classes in label order. Each item can be a
    string with the class name or an object with "name" and "display"
    properties (required)
  - features: an object with a property for each feature with its name and
    either a string value naming its kind ('numeric' or 'categorical') or
    a list of values for categorical features (optional). Features are kept
    in the order they are declared.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	doc := &metadataDoc{}
	err := yaml.Unmarshal(md, doc)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml metadata")
	}
	if doc.Label == "" {
		return nil, errors.New("metadata has no label")
	}
	if len(doc.Classes) == 0 {
		return nil, errors.New("metadata has no class information")
	}
	result := &Metadata{Label: doc.Label}
	for i, c := range doc.Classes {
		class, err := parseClass(i, c)
		if err != nil {
			return nil, err
		}
		result.Classes = append(result.Classes, class)
	}
	for _, item := range doc.Features {
		name := fmt.Sprintf("%v", item.Key)
		if name == doc.Label {
			continue
		}
		switch v := item.Value.(type) {
		case string:
			k, err := feature.ParseKind(v)
			if err != nil {
				return nil, errors.Wrapf(err, "feature %s", name)
			}
			result.Features = append(result.Features, feature.New(name, k))
		case []interface{}:
			result.Features = append(result.Features, feature.NewCategoricalFeature(name))
		default:
			return nil, errors.Errorf("invalid feature declaration of type %T for feature %s", item.Value, name)
		}
	}
	return result, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed Metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading metadata yml file %s", filepath)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing metadata yml file %s", filepath)
	}
	return metadata, nil
}

func parseClass(i int, c interface{}) (feature.Class, error) {
	switch v := c.(type) {
	case string:
		return feature.Class{Label: i, Name: v, Display: v}, nil
	case map[interface{}]interface{}:
		name, _ := v["name"].(string)
		if name == "" {
			return feature.Class{}, errors.Errorf("class %d has no name", i)
		}
		display, _ := v["display"].(string)
		if display == "" {
			display = name
		}
		return feature.Class{Label: i, Name: name, Display: display}, nil
	}
	return feature.Class{}, errors.Errorf("invalid class declaration of type %T", c)
}
