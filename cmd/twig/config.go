package main

import (
	"fmt"
	"os"

	"github.com/pbanos/twig/dataset"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "twig.yml"

type settings struct {
	Dataset datasetConfig `yaml:"dataset"`
	Tree    struct {
		MinSize int `yaml:"minSize"`
	} `yaml:"tree"`
	Grow struct {
		Workers int `yaml:"workers"`
	} `yaml:"grow"`
	Redis redisConfig `yaml:"redis"`
	Log   logConfig   `yaml:"log"`
}

type datasetConfig struct {
	dataset.Columns `yaml:",inline"`
	// Table is the SQL table or MongoDB collection
	// holding points.
	Table string `yaml:"table"`
}

type redisConfig struct {
	Addr      string `yaml:"addr"`
	DB        int    `yaml:"db"`
	Prefix    string `yaml:"prefix"`
	CacheSize int    `yaml:"cacheSize"`
}

type logConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

func defaultConfig() *settings {
	c := &settings{}
	c.Dataset.Columns = dataset.DefaultColumns()
	c.Dataset.Table = "points"
	c.Tree.MinSize = 1
	c.Grow.Workers = 1
	c.Redis.Addr = "localhost:6379"
	c.Redis.Prefix = "twig"
	c.Redis.CacheSize = 16
	c.Log.Level = "info"
	c.Log.MaxSizeMB = 100
	c.Log.MaxBackups = 3
	return c
}

/*
loadConfig takes a path to a YML configuration file and returns the
default configuration overridden with the values in it. If the path
is "" the default configuration file is read if it exists, and the
default configuration is returned if it does not.
*/
func loadConfig(path string) (*settings, error) {
	c := defaultConfig()
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return c, nil
		}
		path = defaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %s: %v", path, err)
	}
	err = parseConfig(data, c)
	if err != nil {
		return nil, fmt.Errorf("parsing configuration file %s: %v", path, err)
	}
	return c, nil
}

func parseConfig(data []byte, c *settings) error {
	err := yaml.UnmarshalStrict(data, c)
	if err != nil {
		return err
	}
	if err = c.Dataset.Columns.Validate(); err != nil {
		return fmt.Errorf("dataset: %v", err)
	}
	if c.Tree.MinSize < 1 {
		return fmt.Errorf("tree: minSize must be positive, got %d", c.Tree.MinSize)
	}
	if c.Grow.Workers < 1 {
		return fmt.Errorf("grow: workers must be positive, got %d", c.Grow.Workers)
	}
	if c.Redis.CacheSize < 1 {
		return fmt.Errorf("redis: cacheSize must be positive, got %d", c.Redis.CacheSize)
	}
	return nil
}
