// Package redistore provides a Redis-backed storage.Store, used as the
// durable store when the dashboard is server-rendered and session state
// must be shared across instances.
package redistore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/zarvisretail/authkit/storage"
)

var _ storage.Store = (*RedisStore)(nil)

type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type Option func(*RedisStore)

// WithTTL sets an expiry on every written key. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(rs *RedisStore) {
		rs.ttl = ttl
	}
}

func New(client *redis.Client, prefix string, options ...Option) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("[redistore.New] client is required")
	}

	rs := &RedisStore{
		client: client,
		prefix: prefix,
	}
	for _, opt := range options {
		opt(rs)
	}
	return rs, nil
}

func (rs *RedisStore) Get(key string) (string, error) {
	value, err := rs.client.Get(context.Background(), rs.key(key)).Result()
	if err == redis.Nil {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[RedisStore.Get] redis get")
	}
	return value, nil
}

func (rs *RedisStore) Set(key, value string) error {
	if err := rs.client.Set(context.Background(), rs.key(key), value, rs.ttl).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Set] redis set")
	}
	return nil
}

func (rs *RedisStore) Delete(key string) error {
	if err := rs.client.Del(context.Background(), rs.key(key)).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Delete] redis del")
	}
	return nil
}

func (rs *RedisStore) key(key string) string {
	if rs.prefix == "" {
		return key
	}
	return rs.prefix + ":" + key
}
