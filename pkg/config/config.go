package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Workflow     WorkflowConfig
	Audit        AuditConfig
	Notify       NotifyConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SUPERADMIN_APP_ENV" required:"true"`
	Port         string `envconfig:"SUPERADMIN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SUPERADMIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SUPERADMIN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SUPERADMIN_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SUPERADMIN_DB_DSN"`
	Driver string `envconfig:"SUPERADMIN_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SUPERADMIN_DB_HOST"`
	Port     int    `envconfig:"SUPERADMIN_DB_PORT" default:"5432"`
	User     string `envconfig:"SUPERADMIN_DB_USER"`
	Password string `envconfig:"SUPERADMIN_DB_PASSWORD"`
	Name     string `envconfig:"SUPERADMIN_DB_NAME"`
	SSLMode  string `envconfig:"SUPERADMIN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SUPERADMIN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SUPERADMIN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SUPERADMIN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SUPERADMIN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SUPERADMIN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SUPERADMIN_REDIS_ADDR"`
	Password     string        `envconfig:"SUPERADMIN_REDIS_PASSWORD"`
	DB           int           `envconfig:"SUPERADMIN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SUPERADMIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SUPERADMIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SUPERADMIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SUPERADMIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SUPERADMIN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SUPERADMIN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SUPERADMIN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SUPERADMIN_JWT_EXPIRATION_MINUTES" required:"true"`
}

// WorkflowConfig tunes the order transition engine.
type WorkflowConfig struct {
	// MaxConflictRetries bounds server-side reload-and-retry on version
	// conflicts for commands that are idempotent under retry.
	MaxConflictRetries int `envconfig:"SUPERADMIN_WORKFLOW_MAX_CONFLICT_RETRIES" default:"0"`
}

// AuditConfig tunes the asynchronous audit writer.
type AuditConfig struct {
	MaxAttempts  int           `envconfig:"SUPERADMIN_AUDIT_MAX_ATTEMPTS" default:"5"`
	RetryBackoff time.Duration `envconfig:"SUPERADMIN_AUDIT_RETRY_BACKOFF" default:"250ms"`
}

// NotifyConfig tunes the pending-count aggregator.
type NotifyConfig struct {
	// CacheTTL caps how stale a served pending count may be.
	CacheTTL time.Duration `envconfig:"SUPERADMIN_NOTIFY_CACHE_TTL" default:"30s"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"SUPERADMIN_CRON_INTERVAL" default:"1m"`
	LockTTL  time.Duration `envconfig:"SUPERADMIN_CRON_LOCK_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SUPERADMIN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
