package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type API struct {
	BaseURL   string        `yaml:"base_url" env:"STOREFRONT_API_URL" env-required:"true"`
	Timeout   time.Duration `yaml:"timeout" env:"STOREFRONT_API_TIMEOUT" env-default:"15s"`
	UserAgent string        `yaml:"user_agent" env:"STOREFRONT_USER_AGENT" env-default:"storefront-client/1.0"`
}

// Session selects where the bearer token lives between runs.
type Session struct {
	Store         string `yaml:"store" env:"SESSION_STORE" env-default:"file"`
	FilePath      string `yaml:"file_path" env:"SESSION_FILE" env-default:""`
	EncryptionKey string `yaml:"encryption_key" env:"SESSION_ENCRYPTION_KEY" env-default:""`
	Profile       string `yaml:"profile" env:"SESSION_PROFILE" env-default:"default"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"MAX_OPEN_CONNS" env-default:"4"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"MAX_IDLE_CONNS" env-default:"2"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"CONN_MAX_IDLE_TIME" env-default:"1m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Catalog struct {
	PageSize  int     `yaml:"page_size" env:"CATALOG_PAGE_SIZE" env-default:"24"`
	MaxPrice  float64 `yaml:"max_price" env:"CATALOG_MAX_PRICE" env-default:"5000"`
	PriceStep float64 `yaml:"price_step" env:"CATALOG_PRICE_STEP" env-default:"10"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Metrics struct {
	Addr string `yaml:"address" env:"METRICS_ADDR" env-default:""`
}

type Otel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront-client"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-default:"local"`
	API          API          `yaml:"api"`
	Session      Session      `yaml:"session"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Catalog      Catalog      `yaml:"catalog"`
	Cache        CacheConfig  `yaml:"cache"`
	Metrics      Metrics      `yaml:"metrics"`
	Otel         Otel         `yaml:"otel"`
}

// MustLoad reads CONFIG_PATH, falling back to ~/.storefront/config.yaml when
// that file exists and to the environment alone otherwise. Command line flags
// belong to the CLI, so the path never comes from os.Args.
func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, ".storefront", "config.yaml")
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
			}
		}
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config: %s", err.Error())
	}

	return cfg
}

// LoadConfigFromPath reads the YAML file at path with environment overrides.
// An empty path reads the environment only.
func LoadConfigFromPath(configPath string) (*Config, error) {

	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}

		return cfg.withDefaults()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return cfg.withDefaults()
}

func (c *Config) withDefaults() (*Config, error) {

	if c.Session.FilePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		c.Session.FilePath = filepath.Join(home, ".storefront", "session.json")
	}

	switch c.Session.Store {
	case "memory", "file", "redis", "postgres":
	default:
		return nil, fmt.Errorf("unknown session store %q", c.Session.Store)
	}

	if c.Catalog.PageSize <= 0 {
		return nil, fmt.Errorf("catalog page size must be positive, got %d", c.Catalog.PageSize)
	}

	return c, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
