/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/Lizandraferrari/machine-learning/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

var dialect = sqldataset.Dialect{
	Placeholder: func(i int) string { return fmt.Sprintf("$%d", i) },
	PrimaryKey:  "SERIAL PRIMARY KEY",
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "opening postgresql database")
	}
	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connecting to postgresql database")
	}
	return sqldataset.NewAdapter(db, dialect)
}
