/*
Package csv provides functions to read datasets from CSV streams
and to write them back.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/twig/dataset"
)

/*
Writer is an interface for a CSV stream to which points
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given points
	// and will return the actually written number of
	// points and an error (if not all points could
	// be written)
	Write([]dataset.Point) (int, error)
	// Count returns the total number of points written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count   int
	columns dataset.Columns
	w       *csv.Writer
}

/*
Read takes an io.Reader for a CSV stream and the columns holding
the features and label of points and returns the dataset with the
points parsed from the reader or an error.

The header or first row of the CSV content is expected to contain
the names of all given columns, in any order; other columns are
ignored. The rest of the rows must hold real numbers for the feature
columns and a non-negative integer for the label column.
*/
func Read(reader io.Reader, columns dataset.Columns) (dataset.Dataset, error) {
	var ds dataset.Dataset
	err := ReadByPoint(reader, columns, func(_ int, p dataset.Point) (bool, error) {
		ds = append(ds, p)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

/*
ReadByPoint takes an io.Reader for a CSV stream, the columns holding the
features and label of points and a lambda function on an integer and a
dataset.Point that returns a boolean value.
It parses the points from the reader and for each it calls the lambda
function with the point and its index as parameters. If the lambda
function returns true, it will continue processing the next point,
otherwise it will stop. An error is returned if something goes wrong
when reading the stream or parsing a point.
*/
func ReadByPoint(reader io.Reader, columns dataset.Columns, lambda func(int, dataset.Point) (bool, error)) error {
	if err := columns.Validate(); err != nil {
		return err
	}
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	positions, err := parsePositionsFromCSVHeader(header, columns)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		p, err := parsePointFromCSVRow(row, positions)
		if err != nil {
			return fmt.Errorf("parsing line %d: %w", l, err)
		}
		ok, err := lambda(l-2, p)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadFile takes a filepath string and the columns holding the features
and label of points, opens the file to which the filepath points to
and uses Read to return the dataset in it. If the filepath is "",
os.Stdin is read instead. It will return an error if the given
filepath cannot be opened for reading.
*/
func ReadFile(filepath string, columns dataset.Columns) (dataset.Dataset, error) {
	f := os.Stdin
	if filepath != "" {
		var err error
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	ds, err := Read(f, columns)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return ds, err
}

/*
NewWriter takes an io.Writer and the columns to write points under
and returns a Writer that will write any points on the io.Writer,
after writing the header.
*/
func NewWriter(writer io.Writer, columns dataset.Columns) (Writer, error) {
	if err := columns.Validate(); err != nil {
		return nil, err
	}
	w := csv.NewWriter(writer)
	err := w.Write(columns.Names())
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{columns: columns, w: w}, nil
}

/*
Write takes a writer, the columns to write points under and a
dataset and dumps to the writer the dataset in CSV format. It
returns an error if something went wrong when writing to the writer.
*/
func Write(writer io.Writer, columns dataset.Columns, ds dataset.Dataset) error {
	cw, err := NewWriter(writer, columns)
	if err != nil {
		return err
	}
	_, err = cw.Write(ds)
	if err != nil {
		return err
	}
	return cw.Flush()
}

func parsePositionsFromCSVHeader(header []string, columns dataset.Columns) ([]int, error) {
	byName := make(map[string]int)
	for i, name := range header {
		byName[name] = i
	}
	names := columns.Names()
	positions := make([]int, len(names))
	for i, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("parsing header: missing column %s", name)
		}
		positions[i] = p
	}
	return positions, nil
}

// parsePointFromCSVRow takes a row and the positions on it of the
// feature columns followed by the label column.
func parsePointFromCSVRow(row []string, positions []int) (dataset.Point, error) {
	features := make([]float64, len(positions)-1)
	for i, pos := range positions[:len(features)] {
		if pos >= len(row) {
			return dataset.Point{}, fmt.Errorf("row has no column %d", pos+1)
		}
		v, err := strconv.ParseFloat(row[pos], 64)
		if err != nil {
			return dataset.Point{}, fmt.Errorf("converting %s to float64: %v", row[pos], err)
		}
		features[i] = v
	}
	lpos := positions[len(positions)-1]
	if lpos >= len(row) {
		return dataset.Point{}, fmt.Errorf("row has no column %d", lpos+1)
	}
	label, err := strconv.Atoi(row[lpos])
	if err != nil {
		return dataset.Point{}, fmt.Errorf("converting %s to label: %v", row[lpos], err)
	}
	p := dataset.Point{Features: features, Label: label}
	return p, p.Validate()
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(points []dataset.Point) (int, error) {
	for n, p := range points {
		err := cw.WritePoint(p)
		if err != nil {
			return n, err
		}
	}
	return len(points), nil
}

func (cw *csvWriter) WritePoint(p dataset.Point) error {
	if len(p.Features) < len(cw.columns.Features) {
		return fmt.Errorf("writing point %d: %d features for %d columns", cw.count+1, len(p.Features), len(cw.columns.Features))
	}
	record := make([]string, 0, len(cw.columns.Features)+1)
	for _, v := range p.Features[:len(cw.columns.Features)] {
		record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
	}
	record = append(record, strconv.Itoa(p.Label))
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for point %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
