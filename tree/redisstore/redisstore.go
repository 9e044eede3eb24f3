/*
Package redisstore provides an implementation of tree.Store
that keeps trees serialized as JSON on a redis DB.
*/
package redisstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pbanos/twig/tree"
	"github.com/pbanos/twig/tree/json"
	"gopkg.in/redis.v5"
)

type redisStore struct {
	rc     *redis.Client
	prefix string
}

// New builds a tree.Store backed by a redis DB that stores
// each tree under the key formed by the given prefix and the
// tree's name.
func New(rc *redis.Client, prefix string) tree.Store {
	return &redisStore{rc, prefix}
}

func (rs *redisStore) Save(ctx context.Context, name string, t *tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(name)
	var buf bytes.Buffer
	err := json.WriteTree(&buf, t)
	if err != nil {
		return fmt.Errorf("storing tree %q: encoding tree: %w", redisID, err)
	}
	_, err = rs.rc.Set(redisID, buf.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("storing tree %q in redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	redisID := rs.keyFor(name)
	data, err := rs.rc.Get(redisID).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("retrieving tree %q: %w", redisID, tree.ErrTreeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %v", redisID, err)
	}
	t, err := json.ReadTree(bytes.NewBufferString(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: decoding: %w", redisID, err)
	}
	return t, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(name)
	_, err := rs.rc.Del(redisID).Result()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
