package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	// LabelColumn is the column of the samples table holding their label
	LabelColumn = "label"

	/*
		MaxDiscreteValueInsertionsPerStatement is the maximum number
		of categorical values that are allowed to be added with a single
		insert command with the AddDiscreteValues method of the adapter.
		Trying to add more will result in making more insertion commands
	*/
	MaxDiscreteValueInsertionsPerStatement = 10
	/*
		MaxSampleInsertionsPerStatement is the maximum number
		of samples that are allowed to be added with a single
		insert command with the AddSamples method of the adapter.
		Trying to add more will result in making more insertion commands
	*/
	MaxSampleInsertionsPerStatement = 10
)

/*
Adapter is an interface providing the methods
needed to implement a Store with a database backend.

Raw samples are maps from column name to the value on the column: an int with
the id of a categorical value for discrete feature columns, a float64 for
continuous feature columns and an int for the LabelColumn. Undefined values
are absent from the map.
*/
type Adapter interface {
	ColumnName(string) (string, error)

	CreateDiscreteValuesTable(context.Context) error
	CreateSampleTable(ctx context.Context, discreteFeatureColumns, continuousFeatureColumns []string) error

	AddDiscreteValues(context.Context, []string) (int, error)
	ListDiscreteValues(context.Context) (map[int]string, error)

	AddSamples(ctx context.Context, rawSamples []map[string]interface{}, discreteFeatureColumns, continuousFeatureColumns []string) (int, error)
	IterateOnSamples(ctx context.Context, discreteFeatureColumns, continuousFeatureColumns []string, lambda func(int, map[string]interface{}) (bool, error)) error
	CountSamples(context.Context) (int, error)

	Close() error
}

/*
Dialect holds what changes from one SQL database to another for an Adapter
built with NewAdapter.
*/
type Dialect struct {
	// Placeholder returns the placeholder for the ith (starting at 1)
	// parameter of a statement
	Placeholder func(i int) string
	// PrimaryKey is the column definition of an autoincremented
	// integer primary key
	PrimaryKey string
	// Init holds statements to run right after opening the database
	Init []string
}

type adapter struct {
	db      *sql.DB
	dialect Dialect
}

/*
NewAdapter takes an open database and a Dialect and returns an Adapter that
works on the database using the dialect or an error if the dialect's
initialization statements fail.
*/
func NewAdapter(db *sql.DB, dialect Dialect) (Adapter, error) {
	for _, stmt := range dialect.Init {
		_, err := db.Exec(stmt)
		if err != nil {
			return nil, errors.Wrapf(err, "running %q", stmt)
		}
	}
	return &adapter{db, dialect}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if featureName == "id" || featureName == LabelColumn {
		return "", errors.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if strings.ContainsAny(featureName, `"`) {
		return "", errors.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

func (a *adapter) CreateDiscreteValuesTable(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS discrete_values (
		id %s,
		value TEXT UNIQUE NOT NULL)`, a.dialect.PrimaryKey)
	_, err := a.db.ExecContext(ctx, stmt)
	if err != nil {
		return errors.Wrap(err, "running discrete_values creation statement")
	}
	return nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, discreteFeatureColumns, continuousFeatureColumns []string) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range discreteFeatureColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" INTEGER NULL REFERENCES discrete_values(id), `, c))
	}
	for _, c := range continuousFeatureColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" REAL NULL, `, c))
	}
	createStmtBuf.WriteString(fmt.Sprintf(`"%s" INTEGER NOT NULL, `, LabelColumn))
	createStmtBuf.WriteString(fmt.Sprintf(`"id" %s)`, a.dialect.PrimaryKey))
	_, err := a.db.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return errors.Wrap(err, "ensuring samples table exists")
	}
	return nil
}

func (a *adapter) AddDiscreteValues(ctx context.Context, values []string) (int, error) {
	var added int
	for start := 0; start < len(values); start += MaxDiscreteValueInsertionsPerStatement {
		end := start + MaxDiscreteValueInsertionsPerStatement
		if end > len(values) {
			end = len(values)
		}
		chunk := values[start:end]
		var stmtBuf bytes.Buffer
		stmtBuf.WriteString("INSERT INTO discrete_values (value) VALUES ")
		args := make([]interface{}, 0, len(chunk))
		for i, v := range chunk {
			if i > 0 {
				stmtBuf.WriteString(", ")
			}
			stmtBuf.WriteString(fmt.Sprintf("(%s)", a.dialect.Placeholder(i+1)))
			args = append(args, v)
		}
		_, err := a.db.ExecContext(ctx, stmtBuf.String(), args...)
		if err != nil {
			return added, errors.Wrapf(err, "inserting %d values after the first %d", len(chunk), added)
		}
		added += len(chunk)
	}
	return added, nil
}

func (a *adapter) ListDiscreteValues(ctx context.Context) (map[int]string, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT id, value FROM discrete_values`)
	if err != nil {
		return nil, errors.Wrap(err, "querying discrete_values")
	}
	defer rows.Close()
	result := make(map[int]string)
	for rows.Next() {
		var id int
		var value string
		err = rows.Scan(&id, &value)
		if err != nil {
			return nil, err
		}
		result[id] = value
	}
	return result, rows.Err()
}

func (a *adapter) AddSamples(ctx context.Context, rawSamples []map[string]interface{}, discreteFeatureColumns, continuousFeatureColumns []string) (int, error) {
	columns := make([]string, 0, len(discreteFeatureColumns)+len(continuousFeatureColumns)+1)
	columns = append(columns, discreteFeatureColumns...)
	columns = append(columns, continuousFeatureColumns...)
	columns = append(columns, LabelColumn)
	insertStmtStart := fmt.Sprintf(`INSERT INTO samples ("%s") VALUES `, strings.Join(columns, `", "`))
	var added int
	for start := 0; start < len(rawSamples); start += MaxSampleInsertionsPerStatement {
		end := start + MaxSampleInsertionsPerStatement
		if end > len(rawSamples) {
			end = len(rawSamples)
		}
		chunk := rawSamples[start:end]
		var stmtBuf bytes.Buffer
		stmtBuf.WriteString(insertStmtStart)
		args := make([]interface{}, 0, len(chunk)*len(columns))
		for i, rs := range chunk {
			if i > 0 {
				stmtBuf.WriteString(", ")
			}
			stmtBuf.WriteString("(")
			for j, c := range columns {
				if j > 0 {
					stmtBuf.WriteString(", ")
				}
				stmtBuf.WriteString(a.dialect.Placeholder(len(args) + 1))
				args = append(args, rs[c])
			}
			stmtBuf.WriteString(")")
		}
		_, err := a.db.ExecContext(ctx, stmtBuf.String(), args...)
		if err != nil {
			return added, errors.Wrapf(err, "inserting %d samples after the first %d", len(chunk), added)
		}
		added += len(chunk)
	}
	return added, nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, discreteFeatureColumns, continuousFeatureColumns []string, lambda func(int, map[string]interface{}) (bool, error)) error {
	columns := make([]string, 0, len(discreteFeatureColumns)+len(continuousFeatureColumns)+1)
	columns = append(columns, discreteFeatureColumns...)
	columns = append(columns, continuousFeatureColumns...)
	columns = append(columns, LabelColumn)
	query := fmt.Sprintf(`SELECT "%s" FROM samples ORDER BY "id"`, strings.Join(columns, `", "`))
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "querying samples")
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		rawSample := make(map[string]interface{})
		discreteValues := make([]sql.NullInt64, len(discreteFeatureColumns))
		continuousValues := make([]sql.NullFloat64, len(continuousFeatureColumns))
		var label int
		values := make([]interface{}, 0, len(columns))
		for i := range discreteValues {
			values = append(values, &discreteValues[i])
		}
		for i := range continuousValues {
			values = append(values, &continuousValues[i])
		}
		values = append(values, &label)
		err = rows.Scan(values...)
		if err != nil {
			return errors.Wrapf(err, "scanning sample %d", j)
		}
		for i, c := range discreteFeatureColumns {
			if discreteValues[i].Valid {
				rawSample[c] = int(discreteValues[i].Int64)
			}
		}
		for i, c := range continuousFeatureColumns {
			if continuousValues[i].Valid {
				rawSample[c] = continuousValues[i].Float64
			}
		}
		rawSample[LabelColumn] = label
		ok, err := lambda(j, rawSample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "counting samples")
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
