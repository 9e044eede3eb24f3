package tree

import (
	"fmt"

	"github.com/pbanos/twig/dataset"
)

// Performance holds the outcome of testing a tree
// against a dataset.
type Performance struct {
	// Total is the number of points classified
	Total int
	// Misclassified is the number of points for which
	// the tree predicted a label other than their own
	Misclassified int
}

// ErrorRate returns the fraction of points that were
// misclassified.
func (p *Performance) ErrorRate() float64 {
	if p.Total == 0 {
		return 0.0
	}
	return float64(p.Misclassified) / float64(p.Total)
}

func (p *Performance) String() string {
	return fmt.Sprintf("%.3f", p.ErrorRate())
}

/*
Test takes a dataset and classifies each of its points with the
tree, counting the ones whose predicted label differs from their own.
It returns ErrEmptyDataset for an empty dataset, and the error from
Classify wrapped with the index of the point if a point cannot be
classified.
*/
func (t *Tree) Test(ds dataset.Dataset) (*Performance, error) {
	if len(ds) == 0 {
		return nil, ErrEmptyDataset
	}
	result := &Performance{Total: len(ds)}
	for i, p := range ds {
		label, err := t.Classify(p.Features)
		if err != nil {
			return nil, fmt.Errorf("testing point %d: %w", i, err)
		}
		if label != p.Label {
			result.Misclassified++
		}
	}
	return result, nil
}
