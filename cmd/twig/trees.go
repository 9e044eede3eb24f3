package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/twig/tree"
	"github.com/pbanos/twig/tree/json"
	"github.com/pbanos/twig/tree/redisstore"
	"go.uber.org/zap"
	"gopkg.in/redis.v5"
)

// storeLocationPrefix marks tree locations that name a
// tree on the redis store instead of a JSON file.
const storeLocationPrefix = "redis:"

const treeLocationHelp = "a path to a JSON file or redis:<name> for a tree on the configured redis store"

func storeName(location string) (string, bool) {
	if !strings.HasPrefix(location, storeLocationPrefix) {
		return "", false
	}
	return strings.TrimPrefix(location, storeLocationPrefix), true
}

// Store returns a tree store on the configured redis DB, with
// a cache of the most recently used trees.
func (rcc *rootCmdConfig) Store() (tree.Store, error) {
	rc := redis.NewClient(&redis.Options{Addr: rcc.Redis.Addr, DB: rcc.Redis.DB})
	rcc.logger.Debug("using redis tree store", zap.String("addr", rcc.Redis.Addr), zap.Int("db", rcc.Redis.DB), zap.String("prefix", rcc.Redis.Prefix))
	return tree.NewCachedStore(redisstore.New(rc, rcc.Redis.Prefix), rcc.Redis.CacheSize)
}

/*
loadTrees takes a context and a slice of tree locations and
returns the trees at them, in the same order.
*/
func (rcc *rootCmdConfig) loadTrees(ctx context.Context, locations []string) ([]*tree.Tree, error) {
	var store tree.Store
	trees := make([]*tree.Tree, 0, len(locations))
	for _, location := range locations {
		name, ok := storeName(location)
		if !ok {
			t, err := loadTreeFile(location)
			if err != nil {
				return nil, err
			}
			trees = append(trees, t)
			continue
		}
		if store == nil {
			var err error
			store, err = rcc.Store()
			if err != nil {
				return nil, err
			}
			defer store.Close(ctx)
		}
		rcc.logger.Debug("loading tree from store", zap.String("name", name))
		t, err := store.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

func (rcc *rootCmdConfig) loadTree(ctx context.Context, location string) (*tree.Tree, error) {
	trees, err := rcc.loadTrees(ctx, []string{location})
	if err != nil {
		return nil, err
	}
	return trees[0], nil
}

/*
saveTree takes a context, a tree location and a tree and saves the
tree on the location. An empty location means JSON on STDOUT.
*/
func (rcc *rootCmdConfig) saveTree(ctx context.Context, location string, t *tree.Tree) error {
	if name, ok := storeName(location); ok {
		store, err := rcc.Store()
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		rcc.logger.Debug("saving tree on store", zap.String("name", name))
		return store.Save(ctx, name, t)
	}
	if location == "" {
		err := json.WriteTree(os.Stdout, t)
		fmt.Println()
		return err
	}
	f, err := os.Create(location)
	if err != nil {
		return fmt.Errorf("creating %s: %v", location, err)
	}
	defer f.Close()
	err = json.WriteTree(f, t)
	if err != nil {
		return fmt.Errorf("writing tree in JSON to %s: %v", location, err)
	}
	return f.Close()
}

func loadTreeFile(filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", filepath, err)
	}
	defer f.Close()
	t, err := json.ReadTree(f)
	if err != nil {
		err = fmt.Errorf("parsing tree in JSON from %s: %v", filepath, err)
	}
	return t, err
}
