package tree

import (
	"fmt"
	"strings"
)

// Tree represents a binary decision tree. It is composed of
// its root node and the minimum dataset size it was grown with,
// which cannot be derived from the shape of the tree but does
// not take part in classification.
type Tree struct {
	Root    Node
	MinSize int
}

// Error represents an error related with growing or using trees
type Error string

const (
	// ErrEmptyDataset is returned when trying to grow a tree or
	// develop a node from a dataset without points.
	ErrEmptyDataset = Error("cannot grow a tree from an empty dataset")
	// ErrInvalidMinSize is returned when the minimum dataset size
	// to grow a tree is not a positive number.
	ErrInvalidMinSize = Error("minimum dataset size must be positive")
	// ErrMalformedQuery is returned when classifying a feature
	// vector that lacks a value for an attribute the tree splits on.
	ErrMalformedQuery = Error("query has no value for split attribute")
	// ErrUnroutableQuery is returned when a value of a classified
	// feature vector is neither below nor above-or-equal to a
	// threshold, which only happens for NaN.
	ErrUnroutableQuery = Error("query value cannot be compared with split threshold")
	// ErrIncompleteTree is returned when a tree lacks a node
	// it needs to classify a feature vector.
	ErrIncompleteTree = Error("tree has a missing node")
	// ErrTreeNotFound is returned by stores when no tree is
	// stored under the requested name.
	ErrTreeNotFound = Error("tree not found")
)

func (e Error) Error() string {
	return string(e)
}

/*
Classify takes a feature vector and returns the label the tree
predicts for it, walking from the root and going left when the
vector's value for a split's attribute is below its threshold and
right otherwise.

It returns ErrMalformedQuery if the vector is too short for an
attribute on its path, ErrUnroutableQuery if a value on its path is
NaN and ErrIncompleteTree if the tree lacks a node on its path.
*/
func (t *Tree) Classify(x []float64) (int, error) {
	if t == nil {
		return 0, fmt.Errorf("nil tree cannot classify: %w", ErrIncompleteTree)
	}
	n := t.Root
	for {
		switch node := n.(type) {
		case *Leaf:
			if node == nil {
				return 0, ErrIncompleteTree
			}
			return node.Label, nil
		case *Split:
			if node == nil {
				return 0, ErrIncompleteTree
			}
			if node.Attribute < 0 || node.Attribute >= len(x) {
				return 0, fmt.Errorf("%w: attribute %d of a %d-value vector", ErrMalformedQuery, node.Attribute, len(x))
			}
			v := x[node.Attribute]
			switch {
			case v < node.Threshold:
				n = node.Left
			case v >= node.Threshold:
				n = node.Right
			default:
				return 0, fmt.Errorf("%w: %v against %v on attribute %d", ErrUnroutableQuery, v, node.Threshold, node.Attribute)
			}
		default:
			return 0, ErrIncompleteTree
		}
	}
}

// Equal returns whether the tree is structurally equal to the
// given one. The minimum size each was grown with is not compared.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	return Equal(t.Root, other.Root)
}

// Traverse takes a bottomUp boolean and an error-returning
// function that takes a node and its depth, and goes through
// the tree calling the function for every node. Parents are
// visited before their children (left first) unless bottomUp
// is true, in which case they are visited after them.
// If the function returns an error the traversal is aborted
// and the error returned.
func (t *Tree) Traverse(bottomUp bool, f func(n Node, depth int) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	stack := []traversalItem{{node: t.Root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s, ok := it.node.(*Split)
		if !ok || s == nil || it.expanded {
			if err := f(it.node, it.depth); err != nil {
				return err
			}
			continue
		}
		if bottomUp {
			stack = append(stack, traversalItem{node: s, depth: it.depth, expanded: true})
		} else if err := f(s, it.depth); err != nil {
			return err
		}
		for _, c := range []Node{s.Right, s.Left} {
			if c != nil {
				stack = append(stack, traversalItem{node: c, depth: it.depth + 1})
			}
		}
	}
	return nil
}

// traversalItem is a node pending a visit. A split is expanded
// once its children have been stacked.
type traversalItem struct {
	node     Node
	depth    int
	expanded bool
}

// Depth returns the number of splits on the longest path
// from the root to a leaf.
func (t *Tree) Depth() int {
	var result int
	t.Traverse(false, func(_ Node, depth int) error {
		if depth > result {
			result = depth
		}
		return nil
	})
	return result
}

// Leaves returns the number of leaves of the tree.
func (t *Tree) Leaves() int {
	var result int
	t.Traverse(false, func(n Node, _ int) error {
		if _, ok := n.(*Leaf); ok {
			result++
		}
		return nil
	})
	return result
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return "[empty tree]\n"
	}
	var b strings.Builder
	// first prefixes the line of the node itself,
	// rest every line below it
	type line struct {
		node        Node
		first, rest string
	}
	stack := []line{{node: t.Root}}
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch node := l.node.(type) {
		case *Leaf:
			fmt.Fprintf(&b, "%s{ %v }\n", l.first, node)
		case *Split:
			fmt.Fprintf(&b, "%s{ %v }\n%s|\n", l.first, node, l.rest)
			stack = append(stack,
				line{node.Right, l.rest + "|__>= ", l.rest + "      "},
				line{node.Left, l.rest + "|__<  ", l.rest + "|     "},
			)
		default:
			fmt.Fprintf(&b, "%s{ missing }\n", l.first)
		}
	}
	return b.String()
}
