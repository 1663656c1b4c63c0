package config

const EnvPrefix = "STUDIO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv         = "STUDIO_APP_ENV"
	EnvPort           = "STUDIO_APP_PORT"
	EnvLogLevel       = "STUDIO_LOG_LEVEL"
	EnvStoreDSN       = "STUDIO_STORE_DSN"
	EnvStoreLock      = "STUDIO_STORE_LOCK"
	EnvStoreIOTimeout = "STUDIO_STORE_IO_TIMEOUT"
	EnvRedisURL       = "STUDIO_REDIS_URL"
	EnvRedisAddr      = "STUDIO_REDIS_ADDR"
	EnvAllowedOrigins = "STUDIO_HTTP_ALLOWED_ORIGINS"
)

const (
	StoreSchemeFile       = "file"
	StoreSchemeMemory     = "memory"
	StoreSchemeRedis      = "redis"
	StoreSchemeRediss     = "rediss"
	StoreSchemeSQLite     = "sqlite"
	StoreSchemePostgres   = "postgres"
	StoreSchemePostgresql = "postgresql"
)

const (
	LockLocal = "local"
	LockRedis = "redis"
)
