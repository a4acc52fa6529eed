/*
Package mongodataset provides a store of samples that uses a MongoDB database
as backend, from which datasets can be read and to which samples can be
written.

Samples are stored as documents of the samples collection, with a field for
every defined feature value and the label on the "label" field.
*/
package mongodataset

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

const (
	samplesCollectionName = "samples"
	// LabelField is the document field holding the label of a sample
	LabelField = "label"
)

/*
Store is a collection of samples persisted on a MongoDB database.
*/
type Store struct {
	session  *mgo.Session
	features []feature.Feature
}

/*
Open takes a context, a MongoDB database session and a slice of features and
returns a Store that works on the default database for that session or an
error if the features cannot be stored or indexed on it.
*/
func Open(ctx context.Context, session *mgo.Session, features []feature.Feature) (*Store, error) {
	s := &Store{session, features}
	err := s.ensureIndexes(ctx)
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
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.samplesCollection().Count()
}

/*
Write takes a context and a slice of samples and inserts them on the samples
collection. It returns the number of samples written or an error.
*/
func (s *Store) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(samples))
	for _, sample := range samples {
		docs = append(docs, toDocument(sample, s.features))
	}
	err := s.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, errors.Wrap(err, "inserting samples")
	}
	return len(samples), nil
}

/*
Stream takes a context and returns a channel on which the samples in the
store are sent in insertion order and a channel on which an error is sent
if reading them fails. Both channels are closed when reading ends.
*/
func (s *Store) Stream(ctx context.Context) (<-chan dataset.Sample, <-chan error) {
	samples := make(chan dataset.Sample)
	errs := make(chan error, 1)
	go func() {
		defer close(samples)
		defer close(errs)
		var doc bson.M
		iter := s.samplesCollection().Find(nil).Sort("_id").Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			sample, err := fromDocument(doc, s.features)
			if err != nil {
				errs <- err
				return
			}
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case samples <- sample:
			}
			doc = nil
		}
		if err := iter.Err(); err != nil {
			errs <- errors.Wrap(err, "reading samples")
		}
	}()
	return samples, errs
}

/*
Read takes a context and returns a dataset with all the samples in the store,
in insertion order, or an error.
*/
func (s *Store) Read(ctx context.Context) (*dataset.Dataset, error) {
	var samples []dataset.Sample
	sampleStream, errs := s.Stream(ctx)
	for sample := range sampleStream {
		samples = append(samples, sample)
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	return dataset.New(samples), nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	for _, f := range s.features {
		if err := ctx.Err(); err != nil {
			return err
		}
		fName := f.Name()
		if fName == "_id" || fName == LabelField {
			return errors.Errorf("invalid feature name %q: reserved collection field", fName)
		}
		if strings.ContainsAny(fName, ".$") {
			return errors.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{fName},
			Background: true,
			Sparse:     true,
		}
		err := s.samplesCollection().EnsureIndex(index)
		if err != nil {
			return errors.Wrapf(err, "indexing feature %s", fName)
		}
	}
	return nil
}

func (s *Store) samplesCollection() *mgo.Collection {
	return s.session.DB("").C(samplesCollectionName)
}

func toDocument(sample dataset.Sample, features []feature.Feature) bson.M {
	doc := make(bson.M, len(features)+1)
	for _, f := range features {
		v := sample.ValueFor(f)
		if n, ok := v.Float(); ok {
			doc[f.Name()] = n
		} else if t, ok := v.Token(); ok {
			doc[f.Name()] = t
		}
	}
	doc[LabelField] = sample.Label()
	return doc
}

func fromDocument(doc bson.M, features []feature.Feature) (dataset.Sample, error) {
	values := make(map[string]feature.Value, len(features))
	for _, f := range features {
		raw, ok := doc[f.Name()]
		if !ok || raw == nil {
			continue
		}
		var v feature.Value
		if n, ok := number(raw); ok {
			v = feature.Number(n)
		} else if t, ok := raw.(string); ok {
			var err error
			v, err = feature.ParseValue(t, f.Kind())
			if err != nil {
				return nil, errors.Wrapf(err, "feature %s of document %v", f.Name(), doc["_id"])
			}
		} else {
			return nil, errors.Errorf("unexpected value %v of type %T for feature %s", raw, raw, f.Name())
		}
		if f.Kind() == feature.Categorical && v.Kind() == feature.Numeric {
			v = feature.Token(v.Key())
		}
		if v.Defined() {
			values[f.Name()] = v
		}
	}
	label, ok := number(doc[LabelField])
	if !ok {
		return nil, errors.Errorf("document %v has no numeric %s", doc["_id"], LabelField)
	}
	return dataset.NewSample(values, int(label)), nil
}

func number(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
