/*
Package json provides functions to serialize trees as JSON
documents and to read them back.
*/
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/twig/dataset"
	"github.com/pbanos/twig/tree"
)

type node struct {
	Label     *int     `json:"label,omitempty"`
	Attribute *int     `json:"attr,omitempty"`
	Threshold *float64 `json:"t,omitempty"`
	Left      *int     `json:"l,omitempty"`
	Right     *int     `json:"r,omitempty"`
}

/*
WriteTree takes an io.Writer and a pointer to a tree.Tree and
serializes the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "minSize": the minimum dataset size the tree was grown with
* "nodes": an array with the nodes of the tree in preorder, so
  the root is the first one. Leaves are objects with a "label",
  splits are objects with an "attr", a threshold "t" and the
  positions in the array of their left "l" and right "r" children.
An error is returned if the tree is incomplete, or cannot be
serialized or written onto the io.Writer. Nothing is written
unless the whole tree can be serialized.
*/
func WriteTree(w io.Writer, t *tree.Tree) error {
	if t == nil || t.Root == nil {
		return tree.ErrIncompleteTree
	}
	sizes := make(map[tree.Node]int)
	err := t.Traverse(true, func(n tree.Node, _ int) error {
		size := 1
		if s, ok := n.(*tree.Split); ok {
			if s.Left == nil || s.Right == nil {
				return tree.ErrIncompleteTree
			}
			size += sizes[s.Left] + sizes[s.Right]
		}
		sizes[n] = size
		return nil
	})
	if err != nil {
		return err
	}
	if t.MinSize < 1 {
		return fmt.Errorf("%w: got %d", tree.ErrInvalidMinSize, t.MinSize)
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{"minSize":%d,"nodes":[`, t.MinSize)
	var i int
	err = t.Traverse(false, func(n tree.Node, _ int) error {
		jn, err := encodeNode(n, i, sizes)
		if err != nil {
			return err
		}
		if i != 0 {
			buf.WriteByte(',')
		}
		i++
		buf.Write(jn)
		return nil
	})
	if err != nil {
		return err
	}
	buf.WriteString(`]}`)
	_, err = w.Write(buf.Bytes())
	return err
}

func encodeNode(n tree.Node, i int, sizes map[tree.Node]int) ([]byte, error) {
	jn := &node{}
	switch n := n.(type) {
	case *tree.Leaf:
		label := n.Label
		jn.Label = &label
	case *tree.Split:
		attribute, threshold := n.Attribute, n.Threshold
		left, right := i+1, i+1+sizes[n.Left]
		jn.Attribute, jn.Threshold, jn.Left, jn.Right = &attribute, &threshold, &left, &right
	default:
		return nil, fmt.Errorf("encoding node %d: unknown node type %T", i, n)
	}
	data, err := json.Marshal(jn)
	if err != nil {
		return nil, fmt.Errorf("encoding node %d: %v", i, err)
	}
	return data, nil
}

/*
ReadTree takes an io.Reader and unmarshals its contents into a
new tree.Tree that it returns.
The contents are expected to be a JSON object as written by WriteTree.
An error is returned if the JSON cannot be read from the io.Reader,
or if it does not describe a complete tree grown with a positive
minimum size: every split must have
both children, every node but the root must be the child of exactly
one split that precedes it, and leaves must have non-negative labels.
*/
func ReadTree(r io.Reader) (*tree.Tree, error) {
	dec := json.NewDecoder(r)
	jt := &struct {
		MinSize int                `json:"minSize"`
		Nodes   []*json.RawMessage `json:"nodes"`
	}{}
	err := dec.Decode(jt)
	if err != nil {
		return nil, err
	}
	if jt.MinSize < 1 {
		return nil, fmt.Errorf("%w: got %d", tree.ErrInvalidMinSize, jt.MinSize)
	}
	if len(jt.Nodes) == 0 {
		return nil, fmt.Errorf("no nodes available: %w", tree.ErrIncompleteTree)
	}
	jns := make([]*node, len(jt.Nodes))
	nodes := make([]tree.Node, len(jt.Nodes))
	for i, raw := range jt.Nodes {
		if raw == nil {
			return nil, fmt.Errorf("decoding node %d: null node", i)
		}
		jns[i] = &node{}
		err = json.Unmarshal(*raw, jns[i])
		if err != nil {
			return nil, fmt.Errorf("decoding node %d: %v", i, err)
		}
		nodes[i], err = decodeNode(jns[i])
		if err != nil {
			return nil, fmt.Errorf("decoding node %d: %w", i, err)
		}
	}
	hasParent := make([]bool, len(nodes))
	for i, jn := range jns {
		s, ok := nodes[i].(*tree.Split)
		if !ok {
			continue
		}
		for _, c := range []struct {
			index int
			slot  *tree.Node
		}{{*jn.Left, &s.Left}, {*jn.Right, &s.Right}} {
			if c.index <= i || c.index >= len(nodes) {
				return nil, fmt.Errorf("node %d: invalid child position %d", i, c.index)
			}
			if hasParent[c.index] {
				return nil, fmt.Errorf("node %d: child %d already has a parent", i, c.index)
			}
			hasParent[c.index] = true
			*c.slot = nodes[c.index]
		}
	}
	for i := 1; i < len(nodes); i++ {
		if !hasParent[i] {
			return nil, fmt.Errorf("node %d is not reachable from the root", i)
		}
	}
	return &tree.Tree{Root: nodes[0], MinSize: jt.MinSize}, nil
}

func decodeNode(jn *node) (tree.Node, error) {
	if jn.Label != nil {
		if jn.Attribute != nil || jn.Threshold != nil || jn.Left != nil || jn.Right != nil {
			return nil, fmt.Errorf("leaf carries split fields")
		}
		if *jn.Label < 0 {
			return nil, fmt.Errorf("negative label %d", *jn.Label)
		}
		return &tree.Leaf{Label: *jn.Label}, nil
	}
	if jn.Attribute == nil || jn.Threshold == nil || jn.Left == nil || jn.Right == nil {
		return nil, fmt.Errorf("split lacks attribute, threshold or children: %w", tree.ErrIncompleteTree)
	}
	if *jn.Attribute < 0 || *jn.Attribute >= dataset.Dimensions {
		return nil, fmt.Errorf("split on unknown attribute %d", *jn.Attribute)
	}
	return &tree.Split{Attribute: *jn.Attribute, Threshold: *jn.Threshold}, nil
}
