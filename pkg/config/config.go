package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Store StoreConfig
	DB    DBConfig
	Redis RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STUDIO_APP_ENV" required:"true"`
	Port         string `envconfig:"STUDIO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STUDIO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STUDIO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	AllowedOrigins  []string      `envconfig:"STUDIO_HTTP_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ReadTimeout     time.Duration `envconfig:"STUDIO_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"STUDIO_HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"STUDIO_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`

	// lead form throttling; only enforced when redis is configured
	LeadRateWindow     time.Duration `envconfig:"STUDIO_HTTP_LEAD_RATE_WINDOW" default:"1m"`
	LeadRateIPLimit    int           `envconfig:"STUDIO_HTTP_LEAD_RATE_IP_LIMIT" default:"20"`
	LeadRateEmailLimit int           `envconfig:"STUDIO_HTTP_LEAD_RATE_EMAIL_LIMIT" default:"5"`
}

// StoreConfig selects the record store backend and its locking policy.
type StoreConfig struct {
	DSN       string        `envconfig:"STUDIO_STORE_DSN" default:"file://./data"`
	IOTimeout time.Duration `envconfig:"STUDIO_STORE_IO_TIMEOUT" default:"5s"`
	Lock      string        `envconfig:"STUDIO_STORE_LOCK" default:"local"`
	LockTTL   time.Duration `envconfig:"STUDIO_STORE_LOCK_TTL" default:"10s"`
	LockWait  time.Duration `envconfig:"STUDIO_STORE_LOCK_WAIT" default:"5s"`
}

// Scheme returns the lower-cased DSN scheme, "file" when none is given.
func (s StoreConfig) Scheme() string {
	dsn := strings.TrimSpace(s.DSN)
	idx := strings.Index(dsn, "://")
	if idx <= 0 {
		return StoreSchemeFile
	}
	return strings.ToLower(dsn[:idx])
}

// UsesRedis reports whether either the backend or the collection lock needs redis.
func (s StoreConfig) UsesRedis() bool {
	scheme := s.Scheme()
	return scheme == StoreSchemeRedis || scheme == StoreSchemeRediss || strings.EqualFold(s.Lock, LockRedis)
}

// UsesSQL reports whether the backend is a gorm-managed SQL database.
func (s StoreConfig) UsesSQL() bool {
	switch s.Scheme() {
	case StoreSchemeSQLite, StoreSchemePostgres, StoreSchemePostgresql:
		return true
	}
	return false
}

type DBConfig struct {
	MaxOpenConns    int           `envconfig:"STUDIO_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STUDIO_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STUDIO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STUDIO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STUDIO_REDIS_URL"`
	Address      string        `envconfig:"STUDIO_REDIS_ADDR"`
	Password     string        `envconfig:"STUDIO_REDIS_PASSWORD"`
	DB           int           `envconfig:"STUDIO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STUDIO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STUDIO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STUDIO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STUDIO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STUDIO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether a redis endpoint was supplied.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Store.Lock) {
	case LockLocal, LockRedis:
	default:
		return fmt.Errorf("%s must be %q or %q", EnvStoreLock, LockLocal, LockRedis)
	}

	switch c.Store.Scheme() {
	case StoreSchemeFile, StoreSchemeMemory, StoreSchemeRedis, StoreSchemeRediss,
		StoreSchemeSQLite, StoreSchemePostgres, StoreSchemePostgresql:
	default:
		return fmt.Errorf("unsupported %s scheme %q", EnvStoreDSN, c.Store.Scheme())
	}

	if c.Store.UsesRedis() {
		if c.Redis.URL == "" && c.Redis.Address == "" {
			if scheme := c.Store.Scheme(); scheme == StoreSchemeRedis || scheme == StoreSchemeRediss {
				// the store DSN doubles as the redis URL
				c.Redis.URL = c.Store.DSN
				return nil
			}
			return fmt.Errorf("either %s or %s is required when redis is used", EnvRedisURL, EnvRedisAddr)
		}
	}

	if c.Store.UsesSQL() {
		if _, err := url.Parse(c.Store.DSN); err != nil {
			return fmt.Errorf("parsing %s: %w", EnvStoreDSN, err)
		}
	}
	return nil
}
