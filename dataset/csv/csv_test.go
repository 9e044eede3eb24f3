package csv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pbanos/twig/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	in := "y,comment,x1,x0\n1,a,0.5,8\n0,b,-2,1e3\n"
	ds, err := Read(strings.NewReader(in), dataset.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, dataset.Dataset{
		{Features: []float64{8, 0.5}, Label: 1},
		{Features: []float64{1000, -2}, Label: 0},
	}, ds)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing column", "x0,y\n1,0\n"},
		{"bad float", "x0,x1,y\n1,a,0\n"},
		{"bad label", "x0,x1,y\n1,2,0.5\n"},
		{"negative label", "x0,x1,y\n1,2,-1\n"},
		{"ragged row", "x0,x1,y\n1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), dataset.DefaultColumns())
			assert.Error(t, err)
		})
	}
}

func TestReadMalformedPoint(t *testing.T) {
	for _, in := range []string{
		"x0,x1,y\n1,NaN,0\n",
		"x0,x1,y\n1,0,0\nInf,0,1\n",
		"x0,x1,y\n1,-Inf,0\n",
	} {
		_, err := Read(strings.NewReader(in), dataset.DefaultColumns())
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, dataset.ErrMalformedPoint), in)
	}
}

func TestReadByPointStops(t *testing.T) {
	in := "x0,x1,y\n1,2,0\n3,4,1\n5,6,0\n"
	var seen []int
	err := ReadByPoint(strings.NewReader(in), dataset.DefaultColumns(), func(i int, p dataset.Point) (bool, error) {
		seen = append(seen, i)
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestWriteThenRead(t *testing.T) {
	columns := dataset.Columns{Features: []string{"width", "height"}, Label: "class"}
	ds := dataset.Dataset{
		{Features: []float64{0.1, 2}, Label: 3},
		{Features: []float64{-7.25, 1e-9}, Label: 0},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, columns, ds))
	assert.True(t, strings.HasPrefix(buf.String(), "width,height,class\n"))

	read, err := Read(&buf, columns)
	require.NoError(t, err)
	assert.Equal(t, ds, read)
}

func TestWriterCount(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, dataset.DefaultColumns())
	require.NoError(t, err)
	n, err := w.Write(dataset.Dataset{{Features: []float64{1, 2}}, {Features: []float64{1}}})
	assert.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, w.Count())
	require.NoError(t, w.Flush())
	assert.Equal(t, "x0,x1,y\n1,2,0\n", buf.String())
}
