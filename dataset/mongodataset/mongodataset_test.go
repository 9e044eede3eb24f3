package mongodataset

import (
	"context"
	"errors"
	"testing"

	"github.com/pbanos/twig/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"
)

func TestPointFromDocument(t *testing.T) {
	columns := dataset.DefaultColumns()
	p, err := PointFromDocument(bson.M{"x0": 1.5, "x1": 2, "y": int64(3), "other": "ignored"}, columns)
	require.NoError(t, err)
	assert.Equal(t, dataset.Point{Features: []float64{1.5, 2}, Label: 3}, p)

	p, err = PointFromDocument(bson.M{"x0": int32(-4), "x1": 0.25, "y": 1.0}, columns)
	require.NoError(t, err)
	assert.Equal(t, dataset.Point{Features: []float64{-4, 0.25}, Label: 1}, p)
}

func TestPointFromDocumentErrors(t *testing.T) {
	columns := dataset.DefaultColumns()
	docs := []bson.M{
		{"x0": 1.0, "y": 0},
		{"x0": "1", "x1": 2.0, "y": 0},
		{"x0": 1.0, "x1": 2.0},
		{"x0": 1.0, "x1": 2.0, "y": 0.5},
	}
	for _, doc := range docs {
		_, err := PointFromDocument(doc, columns)
		assert.Error(t, err, "%v", doc)
	}
	_, err := PointFromDocument(bson.M{"x0": 1.0, "x1": 2.0, "y": -2}, columns)
	assert.True(t, errors.Is(err, dataset.ErrMalformedPoint))
}

func TestDocumentFromPoint(t *testing.T) {
	columns := dataset.Columns{Features: []string{"a", "b"}, Label: "class"}
	doc, err := DocumentFromPoint(dataset.Point{Features: []float64{1, 2, 3}, Label: 4}, columns)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"a": 1.0, "b": 2.0, "class": 4}, doc)

	p, err := PointFromDocument(doc, columns)
	require.NoError(t, err)
	assert.Equal(t, dataset.Point{Features: []float64{1, 2}, Label: 4}, p)

	_, err = DocumentFromPoint(dataset.Point{Features: []float64{1}}, columns)
	assert.Error(t, err)
}

func TestReservedColumns(t *testing.T) {
	ctx := context.Background()
	for _, columns := range []dataset.Columns{
		{Features: []string{"_id", "x1"}, Label: "y"},
		{Features: []string{"x0", "x1"}, Label: "seq"},
		{Features: []string{"x.0", "x1"}, Label: "y"},
		{Features: []string{"x0", "$x1"}, Label: "y"},
	} {
		_, err := Read(ctx, nil, "points", columns)
		assert.Error(t, err, "%v", columns)
		assert.Error(t, Write(ctx, nil, "points", columns, nil), "%v", columns)
	}
}
