package tree

import (
	"errors"
	"math"
	"testing"

	"github.com/pbanos/twig/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Tree {
	return &Tree{
		MinSize: 1,
		Root: &Split{
			Attribute: 0,
			Threshold: 8,
			Left:      &Leaf{Label: 0},
			Right: &Split{
				Attribute: 1,
				Threshold: -2.5,
				Left:      &Leaf{Label: 2},
				Right:     &Leaf{Label: 1},
			},
		},
	}
}

func TestEqual(t *testing.T) {
	a := sampleTree()
	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(sampleTree()))

	b := sampleTree()
	b.MinSize = 7
	assert.True(t, a.Equal(b), "minimum size is not compared")

	b = sampleTree()
	b.Root.(*Split).Right.(*Split).Left.(*Leaf).Label = 3
	assert.False(t, a.Equal(b))

	b = sampleTree()
	b.Root.(*Split).Threshold = 8.000001
	assert.False(t, a.Equal(b))

	b = sampleTree()
	b.Root.(*Split).Attribute = 1
	assert.False(t, a.Equal(b))

	b = sampleTree()
	b.Root.(*Split).Left, b.Root.(*Split).Right = b.Root.(*Split).Right, b.Root.(*Split).Left
	assert.False(t, a.Equal(b))

	assert.False(t, Equal(&Leaf{Label: 0}, &Split{Left: &Leaf{}, Right: &Leaf{}}))
	assert.False(t, Equal(&Split{Left: &Leaf{}, Right: &Leaf{}}, &Leaf{Label: 0}))
	assert.True(t, Equal(&Leaf{Label: 5}, &Leaf{Label: 5}))
}

func TestEqualIncomplete(t *testing.T) {
	incomplete := &Split{Left: &Leaf{}}
	assert.False(t, Equal(incomplete, incomplete))
	assert.False(t, Equal(nil, nil))
	var leaf *Leaf
	assert.False(t, Equal(leaf, &Leaf{}))

	var nilTree *Tree
	assert.True(t, nilTree.Equal(nil))
	assert.False(t, nilTree.Equal(sampleTree()))
}

func TestEqualDifferentDatasets(t *testing.T) {
	ds := dataset.Dataset{pt(1, 5, 0), pt(2, 5, 0), pt(8, 5, 1), pt(9, 5, 1)}
	a, err := Build(ds, 1)
	require.NoError(t, err)
	changed := append(dataset.Dataset{}, ds...)
	changed[1] = pt(2, 5, 1)
	b, err := Build(changed, 1)
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}

func TestClassify(t *testing.T) {
	tr := sampleTree()
	tests := []struct {
		x     []float64
		label int
	}{
		{[]float64{7.99, 100}, 0},
		{[]float64{8, -3}, 2},
		{[]float64{8, -2.5}, 1},
		{[]float64{20, 0, 4, 4}, 1},
		{[]float64{math.Inf(-1), math.NaN()}, 0},
	}
	for _, tt := range tests {
		label, err := tr.Classify(tt.x)
		require.NoError(t, err, "%v", tt.x)
		assert.Equal(t, tt.label, label, "%v", tt.x)
	}
}

func TestClassifyErrors(t *testing.T) {
	tr := sampleTree()
	_, err := tr.Classify(nil)
	assert.True(t, errors.Is(err, ErrMalformedQuery))
	_, err = tr.Classify([]float64{9})
	assert.True(t, errors.Is(err, ErrMalformedQuery))
	_, err = tr.Classify([]float64{math.NaN(), 0})
	assert.True(t, errors.Is(err, ErrUnroutableQuery))
	_, err = tr.Classify([]float64{9, math.NaN()})
	assert.True(t, errors.Is(err, ErrUnroutableQuery))

	incomplete := &Tree{Root: &Split{Attribute: 0, Threshold: 1, Right: &Leaf{Label: 1}}}
	_, err = incomplete.Classify([]float64{0, 0})
	assert.True(t, errors.Is(err, ErrIncompleteTree))
	label, err := incomplete.Classify([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	var nilTree *Tree
	_, err = nilTree.Classify([]float64{0, 0})
	assert.True(t, errors.Is(err, ErrIncompleteTree))
	_, err = (&Tree{}).Classify([]float64{0, 0})
	assert.True(t, errors.Is(err, ErrIncompleteTree))
}

func TestTraverse(t *testing.T) {
	tr := sampleTree()
	var visited []string
	var depths []int
	record := func(n Node, depth int) error {
		visited = append(visited, n.String())
		depths = append(depths, depth)
		return nil
	}
	require.NoError(t, tr.Traverse(false, record))
	assert.Equal(t, []string{"x[0] < 8", "label 0", "x[1] < -2.5", "label 2", "label 1"}, visited)
	assert.Equal(t, []int{0, 1, 1, 2, 2}, depths)

	visited, depths = nil, nil
	require.NoError(t, tr.Traverse(true, record))
	assert.Equal(t, []string{"label 0", "label 2", "label 1", "x[1] < -2.5", "x[0] < 8"}, visited)
	assert.Equal(t, []int{1, 2, 2, 1, 0}, depths)

	stop := errors.New("stop")
	var count int
	err := tr.Traverse(false, func(Node, int) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 2, count)
}

func TestDepthAndLeaves(t *testing.T) {
	tr := sampleTree()
	assert.Equal(t, 2, tr.Depth())
	assert.Equal(t, 3, tr.Leaves())

	leaf := &Tree{Root: &Leaf{Label: 1}}
	assert.Equal(t, 0, leaf.Depth())
	assert.Equal(t, 1, leaf.Leaves())
}

// chain returns a tree of n splits, each with a leaf on
// the left and the next split on the right.
func chain(n int) *Tree {
	tr := &Tree{MinSize: 1, Root: &Leaf{Label: n}}
	for i := n - 1; i >= 0; i-- {
		tr.Root = &Split{Attribute: 0, Threshold: float64(i), Left: &Leaf{Label: i}, Right: tr.Root}
	}
	return tr
}

func TestDeepTree(t *testing.T) {
	const n = 200000
	tr := chain(n)
	assert.Equal(t, n, tr.Depth())
	assert.Equal(t, n+1, tr.Leaves())

	var last Node
	require.NoError(t, tr.Traverse(true, func(node Node, depth int) error {
		last = node
		return nil
	}))
	assert.Same(t, tr.Root, last)

	label, err := tr.Classify([]float64{n, 0})
	require.NoError(t, err)
	assert.Equal(t, n, label)
	assert.True(t, tr.Equal(chain(n)))

	small := chain(2).String()
	assert.Equal(t, "{ x[0] < 0 }\n"+
		"|\n"+
		"|__<  { label 0 }\n"+
		"|__>= { x[0] < 1 }\n"+
		"      |\n"+
		"      |__<  { label 1 }\n"+
		"      |__>= { label 2 }\n", small)
}

func TestString(t *testing.T) {
	tr := sampleTree()
	expected := "{ x[0] < 8 }\n" +
		"|\n" +
		"|__<  { label 0 }\n" +
		"|__>= { x[1] < -2.5 }\n" +
		"      |\n" +
		"      |__<  { label 2 }\n" +
		"      |__>= { label 1 }\n"
	assert.Equal(t, expected, tr.String())
	assert.Equal(t, "[empty tree]\n", (&Tree{}).String())
}

func TestPerformance(t *testing.T) {
	tr := sampleTree()
	ds := dataset.Dataset{pt(1, 0, 0), pt(9, -3, 2), pt(9, 0, 2), pt(0, 0, 1)}
	performance, err := tr.Test(ds)
	require.NoError(t, err)
	assert.Equal(t, &Performance{Total: 4, Misclassified: 2}, performance)
	assert.Equal(t, 0.5, performance.ErrorRate())
	assert.Equal(t, "0.500", performance.String())

	_, err = tr.Test(nil)
	assert.True(t, errors.Is(err, ErrEmptyDataset))

	_, err = tr.Test(dataset.Dataset{pt(1, 0, 0), {Features: []float64{math.NaN(), 0}}})
	assert.True(t, errors.Is(err, ErrUnroutableQuery))
	assert.Contains(t, err.Error(), "point 1")

	assert.Equal(t, 0.0, (&Performance{}).ErrorRate())
}
