package tree

import (
	"fmt"

	"github.com/pbanos/twig/dataset"
)

/*
Build takes a dataset and a minimum dataset size and grows a tree
from it. Every node is developed with BranchOut, using the given
minimum size as the threshold under which mixed subsets become
majority leaves instead of being split further.

Nodes are developed from an explicit stack rather than through
recursion, so skewed datasets cannot exhaust the goroutine stack.

Build returns ErrEmptyDataset if the dataset has no points,
ErrInvalidMinSize if minSize is below 1 and a wrapped
dataset.ErrMalformedPoint if any point cannot be split on.
*/
func Build(ds dataset.Dataset, minSize int) (*Tree, error) {
	if err := CheckInput(ds, minSize); err != nil {
		return nil, err
	}
	t := &Tree{MinSize: minSize}
	s := new(buildStack)
	s.Push(&buildItem{&t.Root, ds})
	for !s.Empty() {
		w := s.Pop()
		n, left, right, err := BranchOut(w.dataset, minSize)
		if err != nil {
			return nil, err
		}
		*w.slot = n
		if split, ok := n.(*Split); ok {
			s.Push(&buildItem{&split.Right, right})
			s.Push(&buildItem{&split.Left, left})
		}
	}
	return t, nil
}

// CheckInput returns the error Build would fail with
// for the given dataset and minimum size, or nil.
func CheckInput(ds dataset.Dataset, minSize int) error {
	if len(ds) == 0 {
		return ErrEmptyDataset
	}
	if minSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinSize, minSize)
	}
	return ds.Validate()
}

/*
BranchOut takes a non-empty dataset and a minimum dataset size and
develops a single node for it:
  * a leaf with the shared label if all points have the same label
  * a leaf with the majority label if the dataset has fewer than
    minSize points
  * a leaf with the majority label if no threshold on any attribute
    separates the points
  * otherwise a split on the attribute and threshold with the lowest
    weighted entropy, returned along with the datasets for its left
    and right children, which are both non-empty.

The children of a returned split are nil: it is up to the caller to
develop them and set them before the tree is handed out.
BranchOut returns ErrEmptyDataset if the dataset is empty.
*/
func BranchOut(ds dataset.Dataset, minSize int) (n Node, left, right dataset.Dataset, err error) {
	if len(ds) == 0 {
		return nil, nil, nil, ErrEmptyDataset
	}
	if label, ok := ds.SameLabel(); ok {
		return &Leaf{Label: label}, nil, nil, nil
	}
	if len(ds) < minSize {
		return &Leaf{Label: ds.Majority()}, nil, nil, nil
	}
	attribute, threshold, ok := bestSplit(ds)
	if !ok {
		return &Leaf{Label: ds.Majority()}, nil, nil, nil
	}
	left, right = ds.Partition(attribute, threshold)
	return &Split{Attribute: attribute, Threshold: threshold}, left, right, nil
}

// bestSplit scans attributes in ascending order and, for each,
// the values of the points in dataset order as thresholds. The
// first candidate with the lowest weighted entropy wins. Candidates
// leaving one side empty are skipped.
func bestSplit(ds dataset.Dataset) (attribute int, threshold float64, ok bool) {
	var best float64
	n := float64(len(ds))
	for a := 0; a < dataset.Dimensions; a++ {
		for _, candidate := range ds {
			t := candidate.Features[a]
			left, right := ds.Partition(a, t)
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			h := float64(len(left))*left.Entropy()/n + float64(len(right))*right.Entropy()/n
			if !ok || h < best {
				best, attribute, threshold, ok = h, a, t, true
			}
		}
	}
	return attribute, threshold, ok
}

type buildStack []*buildItem

type buildItem struct {
	slot    *Node
	dataset dataset.Dataset
}

func (s buildStack) Empty() bool        { return len(s) == 0 }
func (s *buildStack) Push(w *buildItem) { *s = append(*s, w) }
func (s *buildStack) Pop() *buildItem {
	w := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return w
}
