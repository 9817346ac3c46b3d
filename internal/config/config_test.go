package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Limits.DefaultPageSize)
	assert.Equal(t, 50, cfg.Limits.MaxPageSize)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.S3.Enabled())
}

func TestLoad_FileWithEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
env: prod
database:
  driver: mongo
  mongo_db: forum
auth:
  jwt_secret: from-file
limits:
  default_page_size: 20
  max_page_size: 40
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "forum", cfg.Database.MongoDB)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 20, cfg.Limits.DefaultPageSize)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database: DatabaseConfig{Driver: DriverPostgres},
			Auth:     AuthConfig{JWTSecret: "s", TokenTTL: time.Hour},
			Limits:   LimitsConfig{DefaultPageSize: 10, MaxPageSize: 50},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"default above max", func(c *Config) { c.Limits.DefaultPageSize = 60 }},
		{"zero page size", func(c *Config) { c.Limits.MaxPageSize = 0 }},
		{"redis without ttl", func(c *Config) { c.Redis.URL = "redis://x"; c.Redis.PageTTL = 0 }},
		{"s3 without size", func(c *Config) { c.S3.Endpoint = "minio:9000"; c.S3.PresignTTL = time.Minute }},
	}

	base := valid()
	require.NoError(t, base.validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.validate())
		})
	}
}
