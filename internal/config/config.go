// Package config loads service configuration from YAML and environment
// variables. Environment values always win over the file.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel string         `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
	S3       S3Config       `yaml:"s3"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Limits   LimitsConfig   `yaml:"limits"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host" env:"HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"1m"`
	CORSOrigins  []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"*" env-separator:","`
}

func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`

	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"qna"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`

	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"100"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`

	MongoURL string `yaml:"mongo_url" env:"MONGO_URL" env-default:"mongodb://localhost:27017"`
	MongoDB  string `yaml:"mongo_db" env:"MONGO_DB" env-default:"qna"`
}

// DSN builds the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TTL" env-default:"72h"`
}

// RedisConfig - empty URL disables the listing cache.
type RedisConfig struct {
	URL     string        `yaml:"url" env:"REDIS_URL"`
	PageTTL time.Duration `yaml:"page_ttl" env:"REDIS_PAGE_TTL" env-default:"60s"`
	Prefix  string        `yaml:"prefix" env:"REDIS_PREFIX" env-default:"qna:"`
}

func (r RedisConfig) Enabled() bool { return r.URL != "" }

// S3Config - empty Endpoint disables image uploads.
type S3Config struct {
	Endpoint      string        `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey     string        `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey     string        `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket        string        `yaml:"bucket" env:"S3_BUCKET" env-default:"qna-images"`
	UseSSL        bool          `yaml:"use_ssl" env:"S3_USE_SSL" env-default:"false"`
	PresignTTL    time.Duration `yaml:"presign_ttl" env:"S3_PRESIGN_TTL" env-default:"15m"`
	PublicBaseURL string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	MaxSizeBytes  int64         `yaml:"max_size_bytes" env:"S3_MAX_SIZE_BYTES" env-default:"5242880"`
	AllowedTypes  []string      `yaml:"allowed_types" env:"S3_ALLOWED_TYPES" env-default:"image/jpeg,image/png,image/webp,image/gif" env-separator:","`
}

func (s S3Config) Enabled() bool { return s.Endpoint != "" }

type TracingConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"qna-api"`
}

type LimitsConfig struct {
	DefaultPageSize int `yaml:"default_page_size" env:"DEFAULT_PAGE_SIZE" env-default:"10"`
	MaxPageSize     int `yaml:"max_page_size" env:"MAX_PAGE_SIZE" env-default:"50"`
}

// MustLoad panics when Load fails.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration. Sources in order: .env (if present), then the
// first of path, CONFIG_PATH and ./local.yaml, then the environment.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverMongo, c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0")
	}

	if c.Limits.DefaultPageSize <= 0 || c.Limits.MaxPageSize <= 0 {
		return fmt.Errorf("limits page sizes must be > 0")
	}
	if c.Limits.DefaultPageSize > c.Limits.MaxPageSize {
		return fmt.Errorf("limits.default_page_size must be <= limits.max_page_size")
	}

	if c.Redis.Enabled() && c.Redis.PageTTL <= 0 {
		return fmt.Errorf("redis.page_ttl must be > 0")
	}
	if c.S3.Enabled() {
		if c.S3.PresignTTL <= 0 {
			return fmt.Errorf("s3.presign_ttl must be > 0")
		}
		if c.S3.MaxSizeBytes <= 0 {
			return fmt.Errorf("s3.max_size_bytes must be > 0")
		}
	}

	return nil
}
