package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/twig/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
dataset:
  features: [petal length, petal width]
  label: species
  table: iris
tree:
  minSize: 4
grow:
  workers: 8
redis:
  addr: redis:6379
  db: 2
log:
  level: debug
  file: /var/log/twig.log
`)
	c := defaultConfig()
	require.NoError(t, parseConfig(data, c))
	assert.Equal(t, dataset.Columns{Features: []string{"petal length", "petal width"}, Label: "species"}, c.Dataset.Columns)
	assert.Equal(t, "iris", c.Dataset.Table)
	assert.Equal(t, 4, c.Tree.MinSize)
	assert.Equal(t, 8, c.Grow.Workers)
	assert.Equal(t, "redis:6379", c.Redis.Addr)
	assert.Equal(t, 2, c.Redis.DB)
	assert.Equal(t, "twig", c.Redis.Prefix, "unset values keep their defaults")
	assert.Equal(t, 16, c.Redis.CacheSize)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "/var/log/twig.log", c.Log.File)
}

func TestParseConfigErrors(t *testing.T) {
	for _, data := range []string{
		"tree:\n  minSize: 0\n",
		"grow:\n  workers: -1\n",
		"redis:\n  cacheSize: 0\n",
		"dataset:\n  features: [a]\n",
		"dataset:\n  label: x0\n",
		"unknown: 1\n",
		"tree: [",
	} {
		assert.Error(t, parseConfig([]byte(data), defaultConfig()), data)
	}
}

func TestLoadConfig(t *testing.T) {
	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), c)

	path := filepath.Join(t.TempDir(), "twig.yml")
	require.NoError(t, os.WriteFile(path, []byte("tree:\n  minSize: 3\n"), 0644))
	c, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Tree.MinSize)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(logConfig{Level: "warn"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
	assert.True(t, logger.Core().Enabled(1))

	logger, err = newLogger(logConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = newLogger(logConfig{Level: "loud"}, false)
	assert.Error(t, err)
}
