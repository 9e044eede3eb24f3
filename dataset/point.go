package dataset

import (
	"fmt"
	"math"
)

// Dimensions is the number of attributes of a point that
// trees are allowed to split on: attributes 0 and 1.
const Dimensions = 2

// Error represents an error related with datasets
// and their points.
type Error string

/*
ErrMalformedPoint is the error returned when a point does not
carry a finite number for every splittable attribute or has a
negative label.
*/
const ErrMalformedPoint = Error("malformed point")

func (e Error) Error() string {
	return string(e)
}

/*
Point represents a sample to learn from or to test a tree against:
a vector of real-valued features and the label it belongs to.

Points are never modified once read. Features beyond the first
Dimensions ones are carried along but never used to split.
*/
type Point struct {
	Features []float64
	Label    int
}

// Validate returns ErrMalformedPoint wrapped with the reason
// when the point cannot be used to grow a tree.
func (p Point) Validate() error {
	if len(p.Features) < Dimensions {
		return fmt.Errorf("%w: %d features, need at least %d", ErrMalformedPoint, len(p.Features), Dimensions)
	}
	for i, v := range p.Features[:Dimensions] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: feature %d is %v", ErrMalformedPoint, i, v)
		}
	}
	if p.Label < 0 {
		return fmt.Errorf("%w: negative label %d", ErrMalformedPoint, p.Label)
	}
	return nil
}

func (p Point) String() string {
	return fmt.Sprintf("[%v -> %d]", p.Features, p.Label)
}
