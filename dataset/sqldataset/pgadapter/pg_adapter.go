/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"bytes"
	"database/sql"
	"fmt"

	"github.com/pbanos/twig/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
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

func (a *adapter) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func (a *adapter) PointTableCreateStmt(table string, featureColumns []string, labelColumn string) string {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s(", table))
	for _, c := range featureColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`%s DOUBLE PRECISION NOT NULL, `, c))
	}
	createStmtBuf.WriteString(fmt.Sprintf(`%s INTEGER NOT NULL, `, labelColumn))
	createStmtBuf.WriteString(`"id" SERIAL PRIMARY KEY)`)
	return createStmtBuf.String()
}

func (a *adapter) Close() error {
	return a.db.Close()
}
