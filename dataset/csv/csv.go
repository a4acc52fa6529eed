/*
Package csv reads datasets from CSV streams and writes samples back as CSV.
*/
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/feature"
)

/*
Writer is an interface for a CSV stream to which samples
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given number
	// of samples and will return the actually written
	// number of samples and an error (if not all samples
	// could be written)
	Write(context.Context, []dataset.Sample) (int, error)
	// Count returns the total number of samples written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

/*
Schema tells how to interpret the columns of a CSV stream: which one holds
the label, the classes the label can take and, optionally, the kinds of
some features.
*/
type Schema struct {
	Label    string
	Classes  feature.Classes
	Features []feature.Feature
}

/*
Table is the result of reading a CSV stream: the dataset with its samples and
the features found on the header, in column order.
*/
type Table struct {
	Dataset  *dataset.Dataset
	Features []feature.Feature
	// Skipped is the number of rows ignored because their label
	// is not one of the schema's classes
	Skipped int
}

type csvWriter struct {
	count    int
	features []feature.Feature
	label    string
	classes  feature.Classes
	w        *csv.Writer
}

/*
ReadDataset takes an io.Reader for a CSV stream and a Schema and returns the
Table parsed from the reader or an error.

The header or first row of the CSV content must name the columns, one of them
being the schema's label. Every other column is a feature. Features declared
in the schema keep their kind; the kind of the rest is inferred: numeric if
every cell with a value parses as a number, categorical otherwise.

Empty cells and cells with the '?' string are undefined values. Rows whose
label is not the name of one of the schema's classes are skipped.
*/
func ReadDataset(reader io.Reader, schema Schema) (*Table, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	labelColumn := -1
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
		if header[i] == schema.Label {
			labelColumn = i
		}
	}
	if labelColumn < 0 {
		return nil, errors.Errorf("reading header: label column %q not found", schema.Label)
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading body")
	}
	features, columns := columnFeatures(header, labelColumn, rows, schema.Features)
	table := &Table{Features: features}
	var samples []dataset.Sample
	for l, row := range rows {
		label, ok := schema.Classes.LabelFor(strings.TrimSpace(row[labelColumn]))
		if !ok {
			table.Skipped++
			continue
		}
		values := make(map[string]feature.Value, len(features))
		for j, f := range features {
			v, err := feature.ParseValue(row[columns[j]], f.Kind())
			if err != nil {
				return nil, errors.Wrapf(err, "parsing line %d", l+2)
			}
			if v.Defined() {
				values[f.Name()] = v
			}
		}
		samples = append(samples, dataset.NewSample(values, label))
	}
	table.Dataset = dataset.New(samples)
	return table, nil
}

/*
ReadDatasetFromFilePath takes a filepath string and a Schema, opens the file to
which the filepath points to and uses ReadDataset to return the Table read from
it or an error. If the filepath is "" os.Stdin is read instead.
*/
func ReadDatasetFromFilePath(filepath string, schema Schema) (*Table, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrap(err, "reading dataset")
		}
		defer f.Close()
	}
	table, err := ReadDataset(f, schema)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", filepath)
	}
	return table, nil
}

/*
NewWriter takes an io.Writer, a slice of features, the name of the label
column and the classes of labels and returns a Writer that will write samples
on the io.Writer, after a header with the feature names and the label column.
*/
func NewWriter(writer io.Writer, features []feature.Feature, label string, classes feature.Classes) (Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, 0, len(features)+1)
	for _, f := range features {
		record = append(record, f.Name())
	}
	record = append(record, label)
	err := w.Write(record)
	if err != nil {
		return nil, errors.Wrap(err, "writing CSV header")
	}
	return &csvWriter{features: features, label: label, classes: classes, w: w}, nil
}

/*
WriteDataset takes a context, a writer, a dataset, a slice of features, the
name of the label column and the classes of labels and dumps the dataset to
the writer in CSV format, specifying only the features in the given slice for
the samples. It returns an error if something went wrong when writing.
*/
func WriteDataset(ctx context.Context, writer io.Writer, ds *dataset.Dataset, features []feature.Feature, label string, classes feature.Classes) error {
	cw, err := NewWriter(writer, features, label, classes)
	if err != nil {
		return err
	}
	_, err = cw.Write(ctx, ds.Samples())
	if err != nil {
		return err
	}
	return cw.Flush()
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	for n, s := range samples {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		err := cw.writeSample(s)
		if err != nil {
			return n, err
		}
	}
	return len(samples), nil
}

func (cw *csvWriter) writeSample(s dataset.Sample) error {
	record := make([]string, 0, len(cw.features)+1)
	for _, f := range cw.features {
		record = append(record, s.ValueFor(f).Key())
	}
	record = append(record, cw.classes.Name(s.Label()))
	err := cw.w.Write(record)
	if err != nil {
		return errors.Wrapf(err, "writing CSV row for sample %d", cw.count+1)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// columnFeatures returns the features for every column but the label one
// along with the index of their column.
func columnFeatures(header []string, labelColumn int, rows [][]string, declared []feature.Feature) ([]feature.Feature, []int) {
	declaredByName := make(map[string]feature.Feature, len(declared))
	for _, f := range declared {
		declaredByName[f.Name()] = f
	}
	var features []feature.Feature
	var columns []int
	for i, name := range header {
		if i == labelColumn {
			continue
		}
		f, ok := declaredByName[name]
		if !ok {
			f = feature.New(name, inferKind(rows, i))
		}
		features = append(features, f)
		columns = append(columns, i)
	}
	return features, columns
}

// inferKind returns Numeric if the column has some value and all of them
// parse as numbers, Categorical otherwise.
func inferKind(rows [][]string, column int) feature.Kind {
	var defined bool
	for _, row := range rows {
		cell := strings.TrimSpace(row[column])
		if cell == "" || cell == feature.UndefinedKey {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return feature.Categorical
		}
		defined = true
	}
	if defined {
		return feature.Numeric
	}
	return feature.Categorical
}
