package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pbanos/twig/dataset"
	"github.com/pbanos/twig/dataset/csv"
	"github.com/pbanos/twig/dataset/mongodataset"
	"github.com/pbanos/twig/dataset/sqldataset"
	"github.com/pbanos/twig/dataset/sqldataset/pgadapter"
	"github.com/pbanos/twig/dataset/sqldataset/sqlite3adapter"
	"go.uber.org/zap"
	mgo "gopkg.in/mgo.v2"
)

const mongoDialTimeout = 10 * time.Second

const datasetLocationHelp = "a CSV (.csv) or SQLite3 (.db) file, a PostgreSQL DB connection URL or a MongoDB connection URL"

type datasetKind int

const (
	csvDataset datasetKind = iota
	sqlite3Dataset
	postgresDataset
	mongoDataset
)

func kindOf(location string) datasetKind {
	switch {
	case strings.HasPrefix(location, "postgresql://"), strings.HasPrefix(location, "postgres://"):
		return postgresDataset
	case strings.HasPrefix(location, "mongodb://"):
		return mongoDataset
	case strings.HasSuffix(location, ".db"):
		return sqlite3Dataset
	}
	return csvDataset
}

func (rcc *rootCmdConfig) sqlAdapter(location string) (sqldataset.Adapter, error) {
	if kindOf(location) == postgresDataset {
		rcc.logger.Debug("creating PostgreSQL adapter", zap.String("url", location))
		return pgadapter.New(location)
	}
	rcc.logger.Debug("creating SQLite3 adapter", zap.String("file", location))
	return sqlite3adapter.New(location)
}

/*
readDataset takes a context and a dataset location and returns the
dataset read from it, using the configured columns and table. An empty
location means CSV on STDIN.
*/
func (rcc *rootCmdConfig) readDataset(ctx context.Context, location string) (dataset.Dataset, error) {
	columns, table := rcc.Dataset.Columns, rcc.Dataset.Table
	switch kindOf(location) {
	case sqlite3Dataset, postgresDataset:
		adapter, err := rcc.sqlAdapter(location)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		rcc.logger.Debug("reading dataset from table", zap.String("table", table))
		return sqldataset.Read(ctx, adapter, table, columns)
	case mongoDataset:
		session, err := mgo.DialWithTimeout(location, mongoDialTimeout)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %v", err)
		}
		defer session.Close()
		rcc.logger.Debug("reading dataset from collection", zap.String("collection", table))
		return mongodataset.Read(ctx, session, table, columns)
	}
	if location == "" {
		rcc.logger.Debug("reading dataset from STDIN")
	} else {
		rcc.logger.Debug("reading dataset from CSV file", zap.String("file", location))
	}
	return csv.ReadFile(location, columns)
}

/*
writeDataset takes a context, a dataset location and a dataset and
writes the dataset on the location, using the configured columns and
table. An empty location means CSV on STDOUT.
*/
func (rcc *rootCmdConfig) writeDataset(ctx context.Context, location string, ds dataset.Dataset) error {
	columns, table := rcc.Dataset.Columns, rcc.Dataset.Table
	switch kindOf(location) {
	case sqlite3Dataset, postgresDataset:
		adapter, err := rcc.sqlAdapter(location)
		if err != nil {
			return err
		}
		defer adapter.Close()
		return sqldataset.Write(ctx, adapter, table, columns, ds)
	case mongoDataset:
		session, err := mgo.DialWithTimeout(location, mongoDialTimeout)
		if err != nil {
			return fmt.Errorf("connecting to MongoDB: %v", err)
		}
		defer session.Close()
		return mongodataset.Write(ctx, session, table, columns, ds)
	}
	if location == "" {
		return csv.Write(os.Stdout, columns, ds)
	}
	f, err := os.Create(location)
	if err != nil {
		return fmt.Errorf("creating %s: %v", location, err)
	}
	defer f.Close()
	err = csv.Write(f, columns, ds)
	if err != nil {
		return fmt.Errorf("writing %s: %v", location, err)
	}
	return f.Close()
}
