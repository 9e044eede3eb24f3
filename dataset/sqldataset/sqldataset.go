package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/twig/dataset"
)

/*
Adapter is an interface providing the methods
needed to read and write datasets on a database
backend.
*/
type Adapter interface {
	// DB returns the database handle to run
	// statements on.
	DB() *sql.DB
	// Identifier takes a table or column name and
	// returns it quoted for use on statements, or an
	// error if it cannot be used as such.
	Identifier(string) (string, error)
	// Placeholder takes the 1-based position of a
	// statement argument and returns the placeholder
	// for it.
	Placeholder(int) string
	// PointTableCreateStmt takes the quoted table
	// name, feature columns and label column and returns
	// a statement that creates the table if it does not
	// exist.
	PointTableCreateStmt(table string, featureColumns []string, labelColumn string) string
	// Close closes the database handle.
	Close() error
}

/*
QuoteIdentifier takes a table or column name and returns it
double-quoted, or an error if it is "id", which is reserved, or
contains a double quote.
*/
func QuoteIdentifier(name string) (string, error) {
	if name == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as column name`, name)
	}
	if name == "" {
		return "", fmt.Errorf("empty identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return fmt.Sprintf(`"%s"`, name), nil
}

/*
Read takes a context, an Adapter, a table name and the columns
holding the features and label of points, and returns the dataset
with the points on the table in the order they were written.
*/
func Read(ctx context.Context, a Adapter, table string, columns dataset.Columns) (dataset.Dataset, error) {
	var ds dataset.Dataset
	err := IterateOnPoints(ctx, a, table, columns, func(_ int, p dataset.Point) (bool, error) {
		ds = append(ds, p)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

/*
IterateOnPoints takes a context, an Adapter, a table name, the columns
holding the features and label of points, and a lambda function on an
integer and a dataset.Point that returns a boolean value.
It queries the points on the table and calls the lambda function with
each point and its index as parameters, stopping when the lambda returns
false or an error.
*/
func IterateOnPoints(ctx context.Context, a Adapter, table string, columns dataset.Columns, lambda func(int, dataset.Point) (bool, error)) error {
	qTable, qColumns, err := quote(a, table, columns)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY "id"`, strings.Join(qColumns, ", "), qTable)
	rows, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying points from %s: %v", table, err)
	}
	defer rows.Close()
	nFeatures := len(columns.Features)
	for i := 0; rows.Next(); i++ {
		features := make([]float64, nFeatures)
		var label int
		dest := make([]interface{}, 0, nFeatures+1)
		for j := range features {
			dest = append(dest, &features[j])
		}
		dest = append(dest, &label)
		err = rows.Scan(dest...)
		if err != nil {
			return fmt.Errorf("scanning point %d from %s: %v", i, table, err)
		}
		p := dataset.Point{Features: features, Label: label}
		if err = p.Validate(); err != nil {
			return fmt.Errorf("point %d from %s: %w", i, table, err)
		}
		ok, err := lambda(i, p)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

/*
Write takes a context, an Adapter, a table name, the columns to store
the features and label of points on and a dataset, creates the table
if it does not exist and inserts the points in it in a single
transaction. It returns an error if the table cannot be created or
any point inserted, in which case no point is inserted.
*/
func Write(ctx context.Context, a Adapter, table string, columns dataset.Columns, ds dataset.Dataset) error {
	qTable, qColumns, err := quote(a, table, columns)
	if err != nil {
		return err
	}
	nFeatures := len(columns.Features)
	_, err = a.DB().ExecContext(ctx, a.PointTableCreateStmt(qTable, qColumns[:nFeatures], qColumns[nFeatures]))
	if err != nil {
		return fmt.Errorf("ensuring table %s exists: %v", table, err)
	}
	var insertStmtBuf bytes.Buffer
	insertStmtBuf.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES (", qTable, strings.Join(qColumns, ", ")))
	for i := range qColumns {
		if i > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString(a.Placeholder(i + 1))
	}
	insertStmtBuf.WriteString(")")
	tx, err := a.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %v", err)
	}
	defer tx.Rollback()
	insertStmt, err := tx.PrepareContext(ctx, insertStmtBuf.String())
	if err != nil {
		return fmt.Errorf("preparing insert command: %v", err)
	}
	defer insertStmt.Close()
	for i, p := range ds {
		if len(p.Features) < nFeatures {
			return fmt.Errorf("inserting point %d: %d features for %d columns", i, len(p.Features), nFeatures)
		}
		args := make([]interface{}, 0, nFeatures+1)
		for _, v := range p.Features[:nFeatures] {
			args = append(args, v)
		}
		args = append(args, p.Label)
		_, err = insertStmt.ExecContext(ctx, args...)
		if err != nil {
			return fmt.Errorf("inserting point %d: %v", i, err)
		}
	}
	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("committing points: %v", err)
	}
	return nil
}

func quote(a Adapter, table string, columns dataset.Columns) (string, []string, error) {
	if err := columns.Validate(); err != nil {
		return "", nil, err
	}
	qTable, err := a.Identifier(table)
	if err != nil {
		return "", nil, fmt.Errorf("table name: %v", err)
	}
	names := columns.Names()
	qColumns := make([]string, len(names))
	for i, name := range names {
		qColumns[i], err = a.Identifier(name)
		if err != nil {
			return "", nil, fmt.Errorf("column name: %v", err)
		}
	}
	return qTable, qColumns, nil
}
