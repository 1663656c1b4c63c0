package recordstore

import (
	"context"
	"errors"
	"time"

	"github.com/northbeam-studio/studio-admin/pkg/redis"
)

// KeyValue is the subset of the redis client the redis backend needs.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CollectionKey(name string) string
	Ping(ctx context.Context) error
}

// RedisBackend stores each collection under a single key; SET is the atomic
// replace.
type RedisBackend struct {
	kv KeyValue
}

func NewRedisBackend(kv KeyValue) *RedisBackend {
	return &RedisBackend{kv: kv}
}

func (b *RedisBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	val, err := b.kv.Get(ctx, b.kv.CollectionKey(collection))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(val), nil
}

func (b *RedisBackend) Replace(ctx context.Context, collection string, data []byte) error {
	return b.kv.Set(ctx, b.kv.CollectionKey(collection), data, 0)
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.kv.Ping(ctx)
}

// Close is a no-op; the shared client is released by the Store.
func (b *RedisBackend) Close() error {
	return nil
}
