package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable consumed by the app.
const EnvPrefix = "WIMS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Navigation    NavigationConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"WIMS_APP_ENV" required:"true"`
	Port         string `envconfig:"WIMS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"WIMS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WIMS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WIMS_DB_DSN"`
	Driver string `envconfig:"WIMS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"WIMS_DB_HOST"`
	Port     int    `envconfig:"WIMS_DB_PORT" default:"5432"`
	User     string `envconfig:"WIMS_DB_USER"`
	Password string `envconfig:"WIMS_DB_PASSWORD"`
	Name     string `envconfig:"WIMS_DB_NAME"`
	SSLMode  string `envconfig:"WIMS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WIMS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WIMS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WIMS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WIMS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a DSN from the discrete host fields when one was not
// provided directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"WIMS_REDIS_URL"`
	Address      string        `envconfig:"WIMS_REDIS_ADDR"`
	Password     string        `envconfig:"WIMS_REDIS_PASSWORD"`
	DB           int           `envconfig:"WIMS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WIMS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WIMS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WIMS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WIMS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WIMS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"WIMS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"WIMS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"WIMS_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"WIMS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WIMS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WIMS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WIMS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WIMS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WIMS_ARGON_KEY_LEN" default:"32"`

	// AllowLegacySHA256 keeps digests written by the predecessor system
	// verifiable during the migration window. Matching logins are rehashed.
	AllowLegacySHA256 bool `envconfig:"WIMS_ALLOW_LEGACY_SHA256" default:"true"`

	MinLength int `envconfig:"WIMS_PASSWORD_MIN_LENGTH" default:"8"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"WIMS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"WIMS_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"WIMS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"WIMS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"WIMS_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"WIMS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type NavigationConfig struct {
	// TransitionDelay reproduces the deliberate page-transition pause of the
	// predecessor UI. Cosmetic; zero disables it.
	TransitionDelay time.Duration `envconfig:"WIMS_NAV_TRANSITION_DELAY" default:"0s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WIMS_AUTO_MIGRATE" default:"true"`
	UseSQLite   bool `envconfig:"WIMS_USE_SQLITE" default:"false"`
}
