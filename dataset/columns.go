package dataset

import "fmt"

/*
Columns names the fields of a tabular source (CSV header,
SQL table, document collection) that hold the features of a
point, in order, and the field that holds its label.
*/
type Columns struct {
	Features []string `yaml:"features"`
	Label    string   `yaml:"label"`
}

// DefaultColumns returns the columns used when none are
// configured: x0 and x1 for the features and y for the label.
func DefaultColumns() Columns {
	return Columns{Features: []string{"x0", "x1"}, Label: "y"}
}

// Validate returns an error if the columns do not name enough
// features or name a field more than once.
func (c Columns) Validate() error {
	if len(c.Features) < Dimensions {
		return fmt.Errorf("%d feature columns given, need at least %d", len(c.Features), Dimensions)
	}
	if c.Label == "" {
		return fmt.Errorf("no label column given")
	}
	seen := map[string]bool{c.Label: true}
	for _, f := range c.Features {
		if f == "" {
			return fmt.Errorf("empty feature column name")
		}
		if seen[f] {
			return fmt.Errorf("column %q named more than once", f)
		}
		seen[f] = true
	}
	return nil
}

// Names returns the feature column names followed by
// the label column name.
func (c Columns) Names() []string {
	return append(append([]string{}, c.Features...), c.Label)
}
