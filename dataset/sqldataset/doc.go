/*
Package sqldataset provides a store of samples that uses an SQL database as
backend, from which datasets can be read and to which samples can be written.

The store uses 2 database tables:
  - discrete_values, storing every categorical value once
  - samples, with a column per feature

Samples are stored on the samples table, with their categorical values as
references to rows of the discrete_values table, their numeric values as
reals and their label as an integer on the "label" column.

Database specifics are handled by an Adapter. Packages sqlite3adapter and
pgadapter provide adapters for SQLite3 and PostgreSQL databases.
*/
package sqldataset
