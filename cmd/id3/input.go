package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	mgo "gopkg.in/mgo.v2"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/dataset/csv"
	"github.com/Lizandraferrari/machine-learning/dataset/mongodataset"
	"github.com/Lizandraferrari/machine-learning/dataset/sqldataset"
	"github.com/Lizandraferrari/machine-learning/dataset/sqldataset/pgadapter"
	"github.com/Lizandraferrari/machine-learning/dataset/sqldataset/sqlite3adapter"
	"github.com/Lizandraferrari/machine-learning/feature"
	"github.com/Lizandraferrari/machine-learning/feature/yaml"
)

const inputFlagUsage = "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL (postgresql://) or MongoDB (mongodb://) connection URL with the labeled data (defaults to STDIN, interpreted as CSV)"

const metadataFlagUsage = "path to a YML file with the label, classes and features of the input data (required)"

// source is a labeled dataset along with its metadata and the features its
// samples can be classified with
type source struct {
	metadata *yaml.Metadata
	dataset  *dataset.Dataset
	features []feature.Feature
}

type sampleWriter interface {
	Write(context.Context, []dataset.Sample) (int, error)
}

type writableSet interface {
	sampleWriter
	Flush() error
}

type closingSampleWriter struct {
	sampleWriter
	close func() error
}

func isPostgreSQL(location string) bool {
	return strings.HasPrefix(location, "postgresql://") || strings.HasPrefix(location, "postgres://")
}

func isMongoDB(location string) bool {
	return strings.HasPrefix(location, "mongodb://")
}

func isSqlite3(location string) bool {
	return strings.HasSuffix(location, ".db")
}

/*
loadSource reads the metadata at metadataPath and the labeled dataset at
input, which may be a CSV file, STDIN when empty, or any of the databases
supported by the sqldataset and mongodataset packages. Databases have no
header to infer features from, so the metadata must declare them.
*/
func (rcc *rootCmdConfig) loadSource(ctx context.Context, input, metadataPath string) (*source, error) {
	logger := rcc.Logger()
	logger.Debug("reading metadata", zap.String("path", metadataPath))
	md, err := yaml.ReadMetadataFromFile(metadataPath)
	if err != nil {
		return nil, err
	}
	src := &source{metadata: md, features: md.Features}
	if input == "" || !(isPostgreSQL(input) || isMongoDB(input) || isSqlite3(input)) {
		if input == "" {
			logger.Info("reading dataset from STDIN")
		} else {
			logger.Info("reading dataset", zap.String("path", input))
		}
		table, err := csv.ReadDatasetFromFilePath(input, csv.Schema{Label: md.Label, Classes: md.Classes, Features: md.Features})
		if err != nil {
			return nil, err
		}
		if table.Skipped > 0 {
			logger.Warn("skipped rows with unknown classes", zap.Int("rows", table.Skipped))
		}
		src.dataset, src.features = table.Dataset, table.Features
		return src, nil
	}
	if len(md.Features) == 0 {
		return nil, errors.Errorf("metadata at %s declares no features to read from %s", metadataPath, input)
	}
	if isMongoDB(input) {
		logger.Info("reading dataset from MongoDB", zap.String("url", input))
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, errors.Wrapf(err, "connecting to %s", input)
		}
		defer session.Close()
		store, err := mongodataset.Open(ctx, session, md.Features)
		if err != nil {
			return nil, err
		}
		src.dataset, err = store.Read(ctx)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	adapter, err := rcc.sqlAdapter(input)
	if err != nil {
		return nil, err
	}
	store, err := sqldataset.Open(ctx, adapter, md.Features)
	if err != nil {
		adapter.Close()
		return nil, err
	}
	defer store.Close()
	src.dataset, err = store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (rcc *rootCmdConfig) sqlAdapter(location string) (sqldataset.Adapter, error) {
	if isPostgreSQL(location) {
		rcc.Logger().Debug("creating PostgreSQL adapter", zap.String("url", location))
		return pgadapter.New(location)
	}
	rcc.Logger().Debug("creating SQLite3 adapter", zap.String("path", location))
	return sqlite3adapter.New(location)
}

/*
outputWriter returns a writableSet on the given output location: a CSV file,
STDOUT when empty, or a newly created SQLite3, PostgreSQL or MongoDB store.
*/
func (rcc *rootCmdConfig) outputWriter(ctx context.Context, output string, src *source) (writableSet, error) {
	logger := rcc.Logger()
	switch {
	case isMongoDB(output):
		logger.Info("writing dataset to MongoDB", zap.String("url", output))
		session, err := mgo.Dial(output)
		if err != nil {
			return nil, errors.Wrapf(err, "connecting to %s", output)
		}
		store, err := mongodataset.Open(ctx, session, src.features)
		if err != nil {
			session.Close()
			return nil, err
		}
		return &closingSampleWriter{store, func() error {
			session.Close()
			return nil
		}}, nil
	case isPostgreSQL(output) || isSqlite3(output):
		logger.Info("writing dataset to SQL database", zap.String("location", output))
		adapter, err := rcc.sqlAdapter(output)
		if err != nil {
			return nil, err
		}
		store, err := sqldataset.Create(ctx, adapter, src.features)
		if err != nil {
			adapter.Close()
			return nil, err
		}
		return &closingSampleWriter{store, store.Close}, nil
	}
	f := os.Stdout
	closeFile := func() error { return nil }
	if output != "" {
		logger.Info("writing dataset", zap.String("path", output))
		var err error
		f, err = os.Create(output)
		if err != nil {
			return nil, errors.Wrapf(err, "creating %s", output)
		}
		closeFile = f.Close
	}
	w, err := csv.NewWriter(f, src.features, src.metadata.Label, src.metadata.Classes)
	if err != nil {
		closeFile()
		return nil, err
	}
	return &closingSampleWriter{w, func() error {
		err := w.Flush()
		if err != nil {
			closeFile()
			return err
		}
		return closeFile()
	}}, nil
}

// Flush releases the resources of the underlying writer
func (csw *closingSampleWriter) Flush() error {
	return csw.close()
}
