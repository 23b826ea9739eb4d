package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"PARKSENSE_APP_ENV" required:"true"`
	Port         string `envconfig:"PARKSENSE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PARKSENSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PARKSENSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PARKSENSE_DB_DSN"`
	Driver string `envconfig:"PARKSENSE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PARKSENSE_DB_HOST"`
	Port     int    `envconfig:"PARKSENSE_DB_PORT" default:"5432"`
	User     string `envconfig:"PARKSENSE_DB_USER"`
	Password string `envconfig:"PARKSENSE_DB_PASSWORD"`
	Name     string `envconfig:"PARKSENSE_DB_NAME"`
	SSLMode  string `envconfig:"PARKSENSE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PARKSENSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PARKSENSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PARKSENSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PARKSENSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either PARKSENSE_DB_DSN or host/user/name settings are required")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"PARKSENSE_REDIS_URL"`
	Address      string        `envconfig:"PARKSENSE_REDIS_ADDR"`
	Password     string        `envconfig:"PARKSENSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PARKSENSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PARKSENSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PARKSENSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PARKSENSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PARKSENSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PARKSENSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. Rate limiting
// degrades to a no-op without one.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"PARKSENSE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PARKSENSE_JWT_ISSUER" default:"parksense"`
	ExpirationMinutes int    `envconfig:"PARKSENSE_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TTL returns the access token lifetime, falling back to the 60 minute default.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PARKSENSE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PARKSENSE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PARKSENSE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PARKSENSE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PARKSENSE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PARKSENSE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PARKSENSE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PARKSENSE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PARKSENSE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PARKSENSE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PARKSENSE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PARKSENSE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PARKSENSE_AUTO_MIGRATE" default:"false"`
}
