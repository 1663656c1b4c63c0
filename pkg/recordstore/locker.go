package recordstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
)

// Locker serializes read-modify-write cycles per collection.
type Locker interface {
	// Lock blocks until the collection lock is held or ctx is done. The
	// returned func releases it.
	Lock(ctx context.Context, collection string) (func(), error)
}

// LocalLocker guards collections within a single process.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: map[string]chan struct{}{}}
}

func (l *LocalLocker) Lock(ctx context.Context, collection string) (func(), error) {
	slot := l.slot(collection)
	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-slot })
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) slot(collection string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[collection]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[collection] = slot
	}
	return slot
}

// LockClient is the subset of the redis client used for distributed locks.
type LockClient interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	DelIfEquals(ctx context.Context, key, value string) (bool, error)
	LockKey(name string) string
}

// ErrLockTimeout is returned when the lock could not be taken within the
// configured wait.
var ErrLockTimeout = errors.New("timed out waiting for collection lock")

// RedisLocker guards collections across processes. The lock key holds an
// owner token with a TTL so a crashed holder cannot block writers forever.
type RedisLocker struct {
	client       LockClient
	ttl          time.Duration
	wait         time.Duration
	pollInterval time.Duration
	logg         *logger.Logger
}

type RedisLockerOptions struct {
	TTL          time.Duration
	Wait         time.Duration
	PollInterval time.Duration
	Logger       *logger.Logger
}

func NewRedisLocker(client LockClient, opts RedisLockerOptions) *RedisLocker {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 25 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &RedisLocker{
		client:       client,
		ttl:          opts.TTL,
		wait:         opts.Wait,
		pollInterval: opts.PollInterval,
		logg:         opts.Logger,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, collection string) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	key := l.client.LockKey(collection)
	owner := uuid.NewString()

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, owner, l.ttl)
		if err != nil && ctx.Err() == nil {
			return nil, err
		}
		if ok {
			return l.releaser(collection, key, owner), nil
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrLockTimeout
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) releaser(collection, key, owner string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			released, err := l.client.DelIfEquals(ctx, key, owner)
			if err != nil {
				l.logg.Error(l.logg.WithCollection(ctx, collection), "release collection lock", err)
				return
			}
			if !released {
				l.logg.Warn(l.logg.WithCollection(ctx, collection), "collection lock expired before release")
			}
		})
	}
}
