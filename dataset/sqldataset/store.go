package sqldataset

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

/*
Store is a collection of samples persisted through an Adapter. Samples can be
written to it and read from it as a dataset.
*/
type Store struct {
	db                    Adapter
	features              []feature.Feature
	featureNamesColumns   map[string]string
	discreteValues        map[int]string
	inverseDiscreteValues map[string]int
	dfColumns             []string
	cfColumns             []string
}

/*
Open takes a context, an Adapter to a db backend and a slice of features and
returns a Store backed by the given adapter or an error if no store is
available through it.

This function expects the adapter to have the samples and categorical value
tables already created with a column for every feature in the slice.
*/
func Open(ctx context.Context, dbAdapter Adapter, features []feature.Feature) (*Store, error) {
	s := &Store{db: dbAdapter, features: features}
	err := s.initFeatureColumns()
	if err != nil {
		return nil, err
	}
	err = s.loadDiscreteValues(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

/*
Create takes a context, an Adapter and a slice of features and returns a Store
backed by the given adapter or an error.

This function will ensure that the samples and categorical value tables are
created on the database.
*/
func Create(ctx context.Context, dbAdapter Adapter, features []feature.Feature) (*Store, error) {
	s := &Store{db: dbAdapter, features: features}
	err := s.initFeatureColumns()
	if err != nil {
		return nil, err
	}
	err = s.db.CreateDiscreteValuesTable(ctx)
	if err != nil {
		return nil, err
	}
	err = s.db.CreateSampleTable(ctx, s.dfColumns, s.cfColumns)
	if err != nil {
		return nil, err
	}
	err = s.loadDiscreteValues(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Features returns the features of the samples in the store
func (s *Store) Features() []feature.Feature {
	return s.features
}

// Count returns the number of samples in the store or an error
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.db.CountSamples(ctx)
}

/*
Write takes a context and a slice of samples and adds them to the store,
along with any categorical value not stored yet. It returns the number of
samples added and an error if not all of them could be added.

Categorical features are stored by value key, so numeric values given for
them are stored as tokens. Non-numeric values of numeric features are
stored as undefined.
*/
func (s *Store) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	err := s.addDiscreteValues(ctx, samples)
	if err != nil {
		return 0, err
	}
	rawSamples := make([]map[string]interface{}, 0, len(samples))
	for _, sample := range samples {
		rawSamples = append(rawSamples, s.newRawSample(sample))
	}
	return s.db.AddSamples(ctx, rawSamples, s.dfColumns, s.cfColumns)
}

/*
Read takes a context and returns a dataset with all the samples in the store,
in the order they were written, or an error.
*/
func (s *Store) Read(ctx context.Context) (*dataset.Dataset, error) {
	var samples []dataset.Sample
	err := s.db.IterateOnSamples(ctx, s.dfColumns, s.cfColumns, func(i int, rawSample map[string]interface{}) (bool, error) {
		sample, err := s.newSample(rawSample)
		if err != nil {
			return false, errors.Wrapf(err, "reading sample %d", i)
		}
		samples = append(samples, sample)
		return true, ctx.Err()
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(samples), nil
}

// Close releases the store's database resources
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initFeatureColumns() error {
	s.featureNamesColumns = make(map[string]string)
	for _, f := range s.features {
		column, err := s.db.ColumnName(f.Name())
		if err != nil {
			return err
		}
		s.featureNamesColumns[f.Name()] = column
		if f.Kind() == feature.Numeric {
			s.cfColumns = append(s.cfColumns, column)
		} else {
			s.dfColumns = append(s.dfColumns, column)
		}
	}
	return nil
}

func (s *Store) loadDiscreteValues(ctx context.Context) error {
	values, err := s.db.ListDiscreteValues(ctx)
	if err != nil {
		return err
	}
	s.discreteValues = values
	s.inverseDiscreteValues = make(map[string]int, len(values))
	for id, v := range values {
		s.inverseDiscreteValues[v] = id
	}
	return nil
}

func (s *Store) addDiscreteValues(ctx context.Context, samples []dataset.Sample) error {
	var newValues []string
	seen := make(map[string]bool)
	for _, sample := range samples {
		for _, f := range s.features {
			if f.Kind() == feature.Numeric {
				continue
			}
			v := sample.ValueFor(f)
			if !v.Defined() {
				continue
			}
			k := v.Key()
			if _, ok := s.inverseDiscreteValues[k]; ok || seen[k] {
				continue
			}
			seen[k] = true
			newValues = append(newValues, k)
		}
	}
	if len(newValues) == 0 {
		return nil
	}
	_, err := s.db.AddDiscreteValues(ctx, newValues)
	if err != nil {
		return err
	}
	return s.loadDiscreteValues(ctx)
}

func (s *Store) newRawSample(sample dataset.Sample) map[string]interface{} {
	rawSample := make(map[string]interface{}, len(s.features)+1)
	for _, f := range s.features {
		column := s.featureNamesColumns[f.Name()]
		v := sample.ValueFor(f)
		if f.Kind() == feature.Numeric {
			if n, ok := v.Float(); ok {
				rawSample[column] = n
			}
			continue
		}
		if v.Defined() {
			rawSample[column] = s.inverseDiscreteValues[v.Key()]
		}
	}
	rawSample[LabelColumn] = sample.Label()
	return rawSample
}

func (s *Store) newSample(rawSample map[string]interface{}) (dataset.Sample, error) {
	values := make(map[string]feature.Value, len(s.features))
	for _, f := range s.features {
		raw, ok := rawSample[s.featureNamesColumns[f.Name()]]
		if !ok {
			continue
		}
		switch rv := raw.(type) {
		case float64:
			values[f.Name()] = feature.Number(rv)
		case int:
			token, ok := s.discreteValues[rv]
			if !ok {
				return nil, errors.Errorf("unknown categorical value id %d for feature %s", rv, f.Name())
			}
			values[f.Name()] = feature.Token(token)
		default:
			return nil, errors.Errorf("unexpected value %v of type %T for feature %s", raw, raw, f.Name())
		}
	}
	label, _ := rawSample[LabelColumn].(int)
	return dataset.NewSample(values, label), nil
}
