package tree

import "fmt"

/*
Node is a node of the tree. It is either a *Leaf, carrying the
label predicted for the points that reach it, or a *Split,
routing points to one of its two children.

Nodes are only created while a tree is being grown and must not be
modified once the tree has been returned.
*/
type Node interface {
	fmt.Stringer
	isNode()
}

// Leaf is a terminal node predicting a single label.
type Leaf struct {
	Label int
}

/*
Split is an internal node. Points whose value for Attribute is
strictly below Threshold are routed to Left, the rest to Right.
Both children are always present on a grown tree.
*/
type Split struct {
	Attribute int
	Threshold float64
	Left      Node
	Right     Node
}

func (*Leaf) isNode()  {}
func (*Split) isNode() {}

func (l *Leaf) String() string {
	return fmt.Sprintf("label %d", l.Label)
}

func (s *Split) String() string {
	return fmt.Sprintf("x[%d] < %v", s.Attribute, s.Threshold)
}

/*
Equal takes two nodes and returns whether the trees rooted at them
are structurally equal: same shape, same labels on corresponding
leaves and same attribute and threshold on corresponding splits.
Thresholds are compared exactly. A split missing a child is never
equal to anything.
*/
func Equal(a, b Node) bool {
	pairs := [][2]Node{{a, b}}
	for len(pairs) > 0 {
		p := pairs[len(pairs)-1]
		pairs = pairs[:len(pairs)-1]
		switch na := p[0].(type) {
		case *Leaf:
			nb, ok := p[1].(*Leaf)
			if !ok || na == nil || nb == nil || na.Label != nb.Label {
				return false
			}
		case *Split:
			nb, ok := p[1].(*Split)
			if !ok || na == nil || nb == nil {
				return false
			}
			if na.Attribute != nb.Attribute || na.Threshold != nb.Threshold {
				return false
			}
			if na.Left == nil || na.Right == nil || nb.Left == nil || nb.Right == nil {
				return false
			}
			pairs = append(pairs, [2]Node{na.Right, nb.Right}, [2]Node{na.Left, nb.Left})
		default:
			return false
		}
	}
	return true
}
