/*
Package sqlite3adapter provides an implementation of the Adapter interface in
the sqldataset package that works over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Lizandraferrari/machine-learning/dataset/sqldataset"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

var dialect = sqldataset.Dialect{
	Placeholder: func(int) string { return "?" },
	PrimaryKey:  "INTEGER PRIMARY KEY AUTOINCREMENT",
	Init:        []string{"PRAGMA foreign_keys=ON"},
}

/*
New takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func New(path string) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite3 database %s", path)
	}
	// sqlite3 allows a single writer at a time
	db.SetMaxOpenConns(1)
	a, err := sqldataset.NewAdapter(db, dialect)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}
