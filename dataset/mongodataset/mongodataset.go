/*
Package mongodataset provides functions to read datasets from
a MongoDB collection and to write them into one.

Each point is a document with a numeric field per feature column,
an integer field for the label column and a "seq" field holding
its position, which keeps the order in which points were written.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/twig/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const sequenceField = "seq"

/*
Read takes a context, a MongoDB session, a collection name and the
columns holding the features and label of points, and returns the
dataset with the points on the collection of the session's default
database, in the order they were written.
*/
func Read(ctx context.Context, session *mgo.Session, collection string, columns dataset.Columns) (dataset.Dataset, error) {
	if err := checkColumns(columns); err != nil {
		return nil, err
	}
	var ds dataset.Dataset
	var doc bson.M
	iter := session.DB("").C(collection).Find(nil).Sort(sequenceField).Iter()
	defer iter.Close()
	for i := 0; iter.Next(&doc); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := PointFromDocument(doc, columns)
		if err != nil {
			return nil, fmt.Errorf("reading point %d from %s: %w", i, collection, err)
		}
		ds = append(ds, p)
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading points from %s: %v", collection, err)
	}
	return ds, nil
}

/*
Write takes a context, a MongoDB session, a collection name, the
columns to store the features and label of points on and a dataset,
ensures an index on the sequence field and inserts a document for
each point on the collection of the session's default database.
*/
func Write(ctx context.Context, session *mgo.Session, collection string, columns dataset.Columns, ds dataset.Dataset) error {
	if err := checkColumns(columns); err != nil {
		return err
	}
	c := session.DB("").C(collection)
	err := c.EnsureIndex(mgo.Index{Key: []string{sequenceField}, Background: true})
	if err != nil {
		return fmt.Errorf("ensuring index on %s: %v", collection, err)
	}
	start, err := c.Count()
	if err != nil {
		return fmt.Errorf("counting points on %s: %v", collection, err)
	}
	docs := make([]interface{}, 0, len(ds))
	for i, p := range ds {
		doc, err := DocumentFromPoint(p, columns)
		if err != nil {
			return fmt.Errorf("writing point %d: %v", i, err)
		}
		doc[sequenceField] = start + i
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	err = c.Insert(docs...)
	if err != nil {
		return fmt.Errorf("inserting points on %s: %v", collection, err)
	}
	return nil
}

// PointFromDocument takes a document and the columns holding the
// features and label of a point and returns the point in it.
// Numeric fields of any BSON numeric type are accepted, but labels
// must be integral.
func PointFromDocument(doc bson.M, columns dataset.Columns) (dataset.Point, error) {
	features := make([]float64, len(columns.Features))
	for i, name := range columns.Features {
		v, ok := toFloat(doc[name])
		if !ok {
			return dataset.Point{}, fmt.Errorf("field %s: expected number, got %T", name, doc[name])
		}
		features[i] = v
	}
	l, ok := toFloat(doc[columns.Label])
	if !ok || l != float64(int(l)) {
		return dataset.Point{}, fmt.Errorf("field %s: expected integer, got %v", columns.Label, doc[columns.Label])
	}
	p := dataset.Point{Features: features, Label: int(l)}
	return p, p.Validate()
}

// DocumentFromPoint takes a point and the columns to store its
// features and label on and returns a document for it.
func DocumentFromPoint(p dataset.Point, columns dataset.Columns) (bson.M, error) {
	if len(p.Features) < len(columns.Features) {
		return nil, fmt.Errorf("%d features for %d columns", len(p.Features), len(columns.Features))
	}
	doc := make(bson.M)
	for i, name := range columns.Features {
		doc[name] = p.Features[i]
	}
	doc[columns.Label] = p.Label
	return doc, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func checkColumns(columns dataset.Columns) error {
	if err := columns.Validate(); err != nil {
		return err
	}
	for _, name := range columns.Names() {
		if name == "_id" || name == sequenceField {
			return fmt.Errorf("invalid column name %q: reserved collection field", name)
		}
		if strings.ContainsAny(name, ".$") {
			return fmt.Errorf("invalid column name %q: contains reserved characters %q or %q", name, ".", "$")
		}
	}
	return nil
}
