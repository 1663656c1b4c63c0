package recordstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/northbeam-studio/studio-admin/pkg/config"
	"github.com/northbeam-studio/studio-admin/pkg/db"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
	"github.com/northbeam-studio/studio-admin/pkg/metrics"
	"github.com/northbeam-studio/studio-admin/pkg/migrate"
	"github.com/northbeam-studio/studio-admin/pkg/redis"
	"go.uber.org/multierr"
)

// OpenParams carries everything Open needs to build a Store from config.
type OpenParams struct {
	Store   config.StoreConfig
	DB      config.DBConfig
	Redis   config.RedisConfig
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics

	// RedisClient, when set, is reused instead of dialing a new one. The
	// caller keeps ownership and closes it.
	RedisClient *redis.Client
}

// Open builds the backend named by the store DSN scheme and the configured
// locker. SQL backends are migrated before use.
func Open(ctx context.Context, params OpenParams) (*Store, error) {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	cfg := params.Store

	var (
		backend  Backend
		closers  []io.Closer
		redisCli = params.RedisClient
		ready    = map[string]any{
			"backend": cfg.Scheme(),
			"lock":    strings.ToLower(cfg.Lock),
		}
	)
	fail := func(err error) (*Store, error) {
		for _, closer := range closers {
			err = multierr.Append(err, closer.Close())
		}
		return nil, err
	}

	if cfg.UsesRedis() && redisCli == nil {
		cli, err := redis.New(ctx, params.Redis, logg)
		if err != nil {
			return fail(fmt.Errorf("connect redis: %w", err))
		}
		redisCli = cli
		closers = append(closers, cli)
	}

	switch scheme := cfg.Scheme(); scheme {
	case config.StoreSchemeFile:
		fb, err := NewFileBackend(filePath(cfg.DSN))
		if err != nil {
			return fail(err)
		}
		backend = fb
		ready["dir"] = fb.Dir()
	case config.StoreSchemeMemory:
		backend = NewMemoryBackend()
	case config.StoreSchemeRedis, config.StoreSchemeRediss:
		backend = NewRedisBackend(redisCli)
	case config.StoreSchemeSQLite, config.StoreSchemePostgres, config.StoreSchemePostgresql:
		client, err := db.New(ctx, cfg.DSN, params.DB, logg)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, client)
		sqlDB, err := client.SQL()
		if err != nil {
			return fail(err)
		}
		if err := migrate.Up(ctx, sqlDB, client.Dialect()); err != nil {
			return fail(fmt.Errorf("migrate record store: %w", err))
		}
		backend = NewSQLBackend(client)
	default:
		return fail(fmt.Errorf("unsupported record store scheme %q", scheme))
	}

	var locker Locker
	if strings.EqualFold(cfg.Lock, config.LockRedis) {
		locker = NewRedisLocker(redisCli, RedisLockerOptions{
			TTL:    cfg.LockTTL,
			Wait:   cfg.LockWait,
			Logger: logg,
		})
	}

	store, err := New(Options{
		Backend:   backend,
		Locker:    locker,
		IOTimeout: cfg.IOTimeout,
		Metrics:   params.Metrics,
		Logger:    logg,
		Closers:   closers,
	})
	if err != nil {
		return fail(err)
	}

	logg.Info(logg.WithFields(ctx, ready), "record store ready")
	return store, nil
}

func filePath(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if idx := strings.Index(dsn, "://"); idx >= 0 {
		return dsn[idx+3:]
	}
	return dsn
}
