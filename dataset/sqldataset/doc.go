/*
Package sqldataset provides functions to read datasets from
SQL databases and to write them into them.

Points are stored on a single table with a column for each
feature, one for the label and an auto-incremented "id"
column that keeps the order in which points were written.

The differences between database engines are handled by
an Adapter, of which the sqlite3adapter and pgadapter
subpackages provide implementations.
*/
package sqldataset
