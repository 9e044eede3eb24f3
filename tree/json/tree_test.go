package json

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/pbanos/twig/dataset"
	"github.com/pbanos/twig/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *tree.Tree {
	return &tree.Tree{
		MinSize: 3,
		Root: &tree.Split{
			Attribute: 1,
			Threshold: 0.25,
			Left: &tree.Split{
				Attribute: 0,
				Threshold: -4,
				Left:      &tree.Leaf{Label: 0},
				Right:     &tree.Leaf{Label: 2},
			},
			Right: &tree.Leaf{Label: 1},
		},
	}
}

func TestWriteTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, sampleTree()))
	expected := `{"minSize":3,"nodes":[` +
		`{"attr":1,"t":0.25,"l":1,"r":4},` +
		`{"attr":0,"t":-4,"l":2,"r":3},` +
		`{"label":0},{"label":2},{"label":1}]}`
	assert.JSONEq(t, expected, buf.String())
}

func TestWriteThenReadTree(t *testing.T) {
	ds := dataset.Dataset{}
	for i := 0; i < 30; i++ {
		ds = append(ds, dataset.Point{Features: []float64{float64(i % 7), float64(i % 5)}, Label: i % 3})
	}
	grown, err := tree.Build(ds, 2)
	require.NoError(t, err)
	for _, original := range []*tree.Tree{sampleTree(), grown, {Root: &tree.Leaf{Label: 4}, MinSize: 1}} {
		var buf bytes.Buffer
		require.NoError(t, WriteTree(&buf, original))
		read, err := ReadTree(&buf)
		require.NoError(t, err)
		assert.True(t, original.Equal(read), "wrote\n%vread\n%v", original, read)
		assert.Equal(t, original.MinSize, read.MinSize)
	}
}

func TestWriteIncompleteTree(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTree(&buf, &tree.Tree{Root: &tree.Split{Left: &tree.Leaf{}}})
	assert.True(t, errors.Is(err, tree.ErrIncompleteTree))
	err = WriteTree(&buf, &tree.Tree{})
	assert.True(t, errors.Is(err, tree.ErrIncompleteTree))
}

func TestWriteTreeLeavesNothingBehindOnError(t *testing.T) {
	buf := bytes.NewBufferString("previous")
	unencodable := &tree.Tree{
		MinSize: 1,
		Root: &tree.Split{
			Attribute: 0,
			Threshold: math.Inf(1),
			Left:      &tree.Leaf{Label: 0},
			Right:     &tree.Leaf{Label: 1},
		},
	}
	assert.Error(t, WriteTree(buf, unencodable))
	assert.Equal(t, "previous", buf.String())
}

func TestMinSizeMustBePositive(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTree(&buf, &tree.Tree{Root: &tree.Leaf{Label: 0}})
	assert.True(t, errors.Is(err, tree.ErrInvalidMinSize))
	assert.Empty(t, buf.String())

	for _, in := range []string{
		`{"nodes":[{"label":0}]}`,
		`{"minSize":0,"nodes":[{"label":0}]}`,
		`{"minSize":-2,"nodes":[{"label":0}]}`,
	} {
		_, err := ReadTree(strings.NewReader(in))
		assert.True(t, errors.Is(err, tree.ErrInvalidMinSize), in)
	}
}

func TestReadTreeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `nodes`},
		{"no nodes", `{"minSize":1,"nodes":[]}`},
		{"null node", `{"minSize":1,"nodes":[null]}`},
		{"split without children", `{"minSize":1,"nodes":[{"attr":0,"t":1}]}`},
		{"split with one child", `{"minSize":1,"nodes":[{"attr":0,"t":1,"l":1},{"label":0}]}`},
		{"leaf with split fields", `{"minSize":1,"nodes":[{"label":0,"attr":1}]}`},
		{"negative label", `{"minSize":1,"nodes":[{"label":-1}]}`},
		{"unknown attribute", `{"minSize":1,"nodes":[{"attr":2,"t":1,"l":1,"r":2},{"label":0},{"label":1}]}`},
		{"child out of range", `{"minSize":1,"nodes":[{"attr":0,"t":1,"l":1,"r":3},{"label":0},{"label":1}]}`},
		{"self reference", `{"minSize":1,"nodes":[{"attr":0,"t":1,"l":0,"r":1},{"label":0}]}`},
		{"shared child", `{"minSize":1,"nodes":[{"attr":0,"t":1,"l":1,"r":1},{"label":0}]}`},
		{"unreachable node", `{"minSize":1,"nodes":[{"attr":0,"t":1,"l":1,"r":2},{"label":0},{"label":1},{"label":2}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTree(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}
