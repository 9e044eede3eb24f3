/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqldataset package that works
over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"bytes"
	"database/sql"
	"fmt"

	"github.com/pbanos/twig/dataset/sqldataset"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func New(path string) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) Identifier(name string) (string, error) {
	return sqldataset.QuoteIdentifier(name)
}

func (a *adapter) Placeholder(int) string {
	return "?"
}

func (a *adapter) PointTableCreateStmt(table string, featureColumns []string, labelColumn string) string {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s(", table))
	for _, c := range featureColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`%s REAL NOT NULL, `, c))
	}
	createStmtBuf.WriteString(fmt.Sprintf(`%s INTEGER NOT NULL, `, labelColumn))
	createStmtBuf.WriteString(`"id" INTEGER PRIMARY KEY AUTOINCREMENT)`)
	return createStmtBuf.String()
}

func (a *adapter) Close() error {
	return a.db.Close()
}
