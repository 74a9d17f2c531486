package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Creates a temporary YAML config file in a temporary directory.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err, "Failed to write temporary config file")

	return configPath
}

func TestLoadConfigFromPath(t *testing.T) {
	validYAML := `
env: "test"
api:
  base_url: "http://shop.local/api"
  timeout: "3s"
session:
  store: "redis"
  profile: "admin"
database:
  PG_HOST: "dbhost"
  PG_PORT: "5433"
  PG_USER: "testuser"
  PG_PASSWORD: "testpassword"
  PG_DBNAME: "testdb"
  PG_SSLMODE: "disable"
redis:
  REDIS_HOST: "redishost"
  REDIS_USER: "redisuser"
  REDIS_PASSWORD: "redispassword"
  REDIS_DB: 1
  REDIS_PORT: "6380"
catalog:
  page_size: 12
  max_price: 9000
cache:
  default_ttl: "10m"
otel:
  ENABLED: true
  SERVICE_NAME: "test-service"
  SAMPLER_RATIO: 0.5
`

	t.Run("Success - Values from YAML", func(t *testing.T) {
		// Arrange
		configPath := createTempConfigFile(t, validYAML)

		// Act
		cfg, err := LoadConfigFromPath(configPath)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.Env)
		assert.Equal(t, "http://shop.local/api", cfg.API.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, "redis", cfg.Session.Store)
		assert.Equal(t, "admin", cfg.Session.Profile)
		assert.Equal(t, "dbhost", cfg.Database.Host)
		assert.Equal(t, "redisuser", cfg.RedisConnect.Username)
		assert.Equal(t, 12, cfg.Catalog.PageSize)
		assert.Equal(t, 9000.0, cfg.Catalog.MaxPrice)
		assert.Equal(t, 10.0, cfg.Catalog.PriceStep)
		assert.Equal(t, 10*time.Minute, cfg.Cache.DefaultTTL)
		assert.True(t, cfg.Otel.Enabled)
		assert.Equal(t, 0.5, cfg.Otel.SamplerRatio)
		assert.NotEmpty(t, cfg.Session.FilePath)
	})

	t.Run("Success - Environment variable override", func(t *testing.T) {
		// Arrange
		configPath := createTempConfigFile(t, validYAML)
		t.Setenv("STOREFRONT_API_URL", "https://override.example.com")
		t.Setenv("PG_HOST", "envhost")

		// Act
		cfg, err := LoadConfigFromPath(configPath)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "https://override.example.com", cfg.API.BaseURL)
		assert.Equal(t, "envhost", cfg.Database.Host)
	})

	t.Run("Success - Environment only", func(t *testing.T) {
		// Arrange
		t.Setenv("STOREFRONT_API_URL", "http://localhost:8000")
		t.Setenv("SESSION_STORE", "memory")

		// Act
		cfg, err := LoadConfigFromPath("")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
		assert.Equal(t, "memory", cfg.Session.Store)
		assert.Equal(t, 15*time.Second, cfg.API.Timeout)
		assert.Equal(t, 24, cfg.Catalog.PageSize)
	})

	t.Run("Failure - Missing file", func(t *testing.T) {
		cfg, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "absent.yaml"))

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("Failure - Unknown session store", func(t *testing.T) {
		// Arrange
		configPath := createTempConfigFile(t, `
api:
  base_url: "http://localhost"
session:
  store: "cookie-jar"
`)

		// Act
		cfg, err := LoadConfigFromPath(configPath)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "unknown session store")
	})
}

func TestGetDSN(t *testing.T) {
	db := Database{User: "u", Password: "p", Host: "h", Port: "5432", Name: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/shop?sslmode=disable", db.GetDSN())

	r := RedisConnect{Username: "ru", Password: "rp", Host: "rh", Port: "6379", DB: 2}
	assert.Equal(t, "redis://ru:rp@rh:6379/2", r.GetDSN())
}
