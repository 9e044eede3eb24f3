package tree

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pbanos/twig/internal/ctxlock"
)

/*
Store is an interface to manage a store where
grown trees can be saved, loaded and deleted by name.

All its methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type Store interface {
	// Save takes a name and a tree and stores the tree
	// under the name, replacing any tree previously
	// stored with it. It returns an error if the tree
	// cannot be stored.
	Save(ctx context.Context, name string, t *Tree) error
	// Load takes a name and returns the tree stored
	// under it, ErrTreeNotFound if there is none, or
	// another error if the store cannot be queried.
	Load(ctx context.Context, name string) (*Tree, error)
	// Delete takes a name and removes the tree stored
	// under it. Deleting a name with no tree is not an
	// error.
	Delete(ctx context.Context, name string) error
	// Close closes the store, implementations should
	// free any resources in use before returning
	// (unless the context expires). It returns an error
	// if the Close cannot be completed.
	Close(ctx context.Context) error
}

type memoryStore struct {
	trees map[string]*Tree
	lock  *sync.RWMutex
}

// NewMemoryStore returns an implementation
// of Store with the process memory space
// as underlying backend
func NewMemoryStore() Store {
	return &memoryStore{
		trees: make(map[string]*Tree),
		lock:  &sync.RWMutex{},
	}
}

func (ms *memoryStore) Save(ctx context.Context, name string, t *Tree) error {
	return ctxlock.Do(ctx, ms.lock, func(ctx context.Context) error {
		ms.trees[name] = t
		return nil
	})
}

func (ms *memoryStore) Load(ctx context.Context, name string) (*Tree, error) {
	var t *Tree
	err := ctxlock.Do(ctx, ms.lock.RLocker(), func(ctx context.Context) error {
		t = ms.trees[name]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("loading %q: %w", name, ErrTreeNotFound)
	}
	return t, nil
}

func (ms *memoryStore) Delete(ctx context.Context, name string) error {
	return ctxlock.Do(ctx, ms.lock, func(ctx context.Context) error {
		delete(ms.trees, name)
		return nil
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

type cachedStore struct {
	Store
	cache *lru.Cache[string, *Tree]
}

/*
NewCachedStore takes a Store and a size and returns a Store that
keeps up to size of the most recently used trees in memory, going
to the given store only for the rest. Saves and deletes are applied
to the given store before updating the cache.
It returns an error if size is not positive.
*/
func NewCachedStore(s Store, size int) (Store, error) {
	cache, err := lru.New[string, *Tree](size)
	if err != nil {
		return nil, fmt.Errorf("creating tree cache: %w", err)
	}
	return &cachedStore{s, cache}, nil
}

func (cs *cachedStore) Save(ctx context.Context, name string, t *Tree) error {
	cs.cache.Remove(name)
	err := cs.Store.Save(ctx, name, t)
	if err != nil {
		return err
	}
	cs.cache.Add(name, t)
	return nil
}

func (cs *cachedStore) Load(ctx context.Context, name string) (*Tree, error) {
	if t, ok := cs.cache.Get(name); ok {
		return t, nil
	}
	t, err := cs.Store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	cs.cache.Add(name, t)
	return t, nil
}

func (cs *cachedStore) Delete(ctx context.Context, name string) error {
	cs.cache.Remove(name)
	return cs.Store.Delete(ctx, name)
}

func (cs *cachedStore) Close(ctx context.Context) error {
	cs.cache.Purge()
	return cs.Store.Close(ctx)
}
