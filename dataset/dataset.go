/*
Package dataset defines the points trees are grown from and the
operations over collections of them that tree induction relies on:
label entropy, majority vote and threshold partitioning.

Readers and writers for concrete backends live in subpackages.
*/
package dataset

import (
	"fmt"
	"math"
)

/*
Dataset represents an ordered collection of points.

Order matters: the split search takes candidate thresholds
in the order points appear, so the first of several equally
good splits is the one kept.
*/
type Dataset []Point

// Validate returns an error for the first malformed point
// in the dataset, or nil if every point can be used.
func (ds Dataset) Validate() error {
	for i, p := range ds {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	return nil
}

/*
Entropy returns the Shannon entropy in bits of the labels
of the dataset. It is 0.0 for an empty dataset and for one
whose points all share a label, and 1.0 for a dataset evenly
split between two labels.
*/
func (ds Dataset) Entropy() float64 {
	if len(ds) == 0 {
		return 0.0
	}
	var result float64
	n := float64(len(ds))
	for _, c := range ds.LabelCounts() {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		result -= p * math.Log(p) / math.Log(2)
	}
	return result
}

/*
LabelCounts returns a slice with as many positions as the
highest label in the dataset plus one, holding in each position
the number of points with that label.
*/
func (ds Dataset) LabelCounts() []int {
	highest := -1
	for _, p := range ds {
		if p.Label > highest {
			highest = p.Label
		}
	}
	counts := make([]int, highest+1)
	for _, p := range ds {
		if p.Label >= 0 {
			counts[p.Label]++
		}
	}
	return counts
}

// SameLabel returns the label shared by all points in the
// dataset and true, or false if the dataset is empty or
// holds more than one label.
func (ds Dataset) SameLabel() (int, bool) {
	if len(ds) == 0 {
		return 0, false
	}
	label := ds[0].Label
	for _, p := range ds[1:] {
		if p.Label != label {
			return 0, false
		}
	}
	return label, true
}

/*
Majority returns the most frequent label in the dataset. On a tie
the smallest of the tied labels is returned. It returns -1 for an
empty dataset.
*/
func (ds Dataset) Majority() int {
	best, most := -1, 0
	for label, c := range ds.LabelCounts() {
		if c > most {
			best, most = label, c
		}
	}
	return best
}

/*
Partition takes an attribute index and a threshold and returns
two new datasets: one with the points whose value for the attribute
is strictly below the threshold and one with the rest, both keeping
the original order.
*/
func (ds Dataset) Partition(attribute int, threshold float64) (left, right Dataset) {
	for _, p := range ds {
		if p.Features[attribute] < threshold {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	return left, right
}

// Labels returns the distinct labels in the dataset
// in ascending order.
func (ds Dataset) Labels() []int {
	var labels []int
	for label, c := range ds.LabelCounts() {
		if c > 0 {
			labels = append(labels, label)
		}
	}
	return labels
}
