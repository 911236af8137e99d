package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Hydration modes for the listing aggregator.
const (
	HydrationStrict   = "strict"
	HydrationTolerant = "tolerant"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Remote struct {
		BaseURL    string
		Timeout    time.Duration
		Retries    int
		Backoff    time.Duration
		IndexLimit int
	}
	Listing struct {
		PageSize    int
		Concurrency int
		Hydration   string
	}
	Log struct {
		Level  string
		Format string
	}
	CORS struct {
		AllowedOrigins []string
	}

	v *viper.Viper
}

// Load reads config from environment (DEX_ prefix), an optional .env file and
// an optional dexview.yaml in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional .env

	v := viper.New()
	v.SetEnvPrefix("DEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("dexview")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	setDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.v = v
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "file:dexview.db")
	v.SetDefault("remote.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("remote.timeout", "10s")
	v.SetDefault("remote.retries", 2)
	v.SetDefault("remote.backoff", "200ms")
	v.SetDefault("remote.index_limit", 2000)
	v.SetDefault("listing.page_size", 24)
	v.SetDefault("listing.concurrency", 16)
	v.SetDefault("listing.hydration", HydrationStrict)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:*"})
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Remote.BaseURL = strings.TrimRight(v.GetString("remote.base_url"), "/")
	cfg.Remote.Retries = v.GetInt("remote.retries")
	cfg.Remote.IndexLimit = v.GetInt("remote.index_limit")
	cfg.Listing.PageSize = v.GetInt("listing.page_size")
	cfg.Listing.Concurrency = v.GetInt("listing.concurrency")
	cfg.Listing.Hydration = strings.ToLower(v.GetString("listing.hydration"))
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.CORS.AllowedOrigins = v.GetStringSlice("cors.allowed_origins")

	timeout, err := time.ParseDuration(v.GetString("remote.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEX_REMOTE_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("DEX_REMOTE_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.Remote.Timeout = timeout

	backoff, err := time.ParseDuration(v.GetString("remote.backoff"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEX_REMOTE_BACKOFF: %w", err)
	}
	if backoff <= 0 {
		return nil, fmt.Errorf("DEX_REMOTE_BACKOFF must be positive, got %s", backoff)
	}
	cfg.Remote.Backoff = backoff

	if cfg.Remote.BaseURL == "" {
		return nil, fmt.Errorf("DEX_REMOTE_BASE_URL is required")
	}
	if cfg.Remote.Retries < 0 {
		return nil, fmt.Errorf("DEX_REMOTE_RETRIES must not be negative")
	}
	if cfg.Remote.IndexLimit <= 0 {
		return nil, fmt.Errorf("DEX_REMOTE_INDEX_LIMIT must be positive")
	}
	if cfg.Listing.PageSize <= 0 {
		return nil, fmt.Errorf("DEX_LISTING_PAGE_SIZE must be positive")
	}
	if cfg.Listing.Concurrency <= 0 {
		return nil, fmt.Errorf("DEX_LISTING_CONCURRENCY must be positive")
	}
	switch cfg.Listing.Hydration {
	case HydrationStrict, HydrationTolerant:
	default:
		return nil, fmt.Errorf("DEX_LISTING_HYDRATION must be %q or %q, got %q",
			HydrationStrict, HydrationTolerant, cfg.Listing.Hydration)
	}
	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("DEX_DB_DRIVER is required (sqlite3, mysql, postgres, pgx)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("DEX_DB_DSN is required")
	}

	return cfg, nil
}

// OnChange re-decodes the config file whenever it changes on disk and hands
// the result to fn. It is a no-op when no config file was loaded.
func (c *Config) OnChange(fn func(next *Config, err error)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}
	c.v.OnConfigChange(func(fsnotify.Event) {
		next, err := decode(c.v)
		if next != nil {
			next.v = c.v
		}
		fn(next, err)
	})
	c.v.WatchConfig()
}

// ConfigFile returns the path of the config file in use, or "".
func (c *Config) ConfigFile() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}
