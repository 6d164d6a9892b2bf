// Package config resolves process settings from .env files and the
// environment.  Command line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/panyam/ramtool/logging"
)

const (
	StoreFile      = "file"
	StoreMemory    = "memory"
	StorePostgres  = "postgres"
	StoreDatastore = "datastore"

	DefaultAddr      = ":8080"
	DefaultCacheSize = 256
)

type Config struct {
	Addr      string
	Env       string
	ServerURL string
	LogLevel  logging.LogLevel
	Store     StoreConfig
	CacheSize int
}

type StoreConfig struct {
	Kind             string
	DataDir          string
	PostgresDSN      string
	DatastoreProject string
}

// IsDev reports whether the dev profile (pretty logs, .env.dev) is on.
func (c *Config) IsDev() bool {
	return strings.EqualFold(c.Env, "dev")
}

// EnvFile returns the dotenv file for a profile.
func EnvFile(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "dev") {
		return ".env.dev"
	}
	return ".env"
}

// Load reads the dotenv file for RAMTOOL_ENV (a missing file is fine) and
// then resolves every setting from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load(EnvFile(os.Getenv("RAMTOOL_ENV")))
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests do not have to
// touch the process environment.  Store settings are not checked here;
// commands that open a store call Validate.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := &Config{
		Addr:      normalizeAddr(firstNonEmpty(get("RAMTOOL_ADDR"), get("PORT"), DefaultAddr)),
		Env:       firstNonEmpty(get("RAMTOOL_ENV"), "local"),
		ServerURL: get("RAMTOOL_SERVER_URL"),
		LogLevel:  logging.LogLevelInfo,
		CacheSize: DefaultCacheSize,
		Store: StoreConfig{
			Kind:             strings.ToLower(firstNonEmpty(get("RAMTOOL_STORE"), StoreFile)),
			DataDir:          firstNonEmpty(get("RAMTOOL_DATA_DIR"), defaultDataDir()),
			PostgresDSN:      get("RAMTOOL_PG_DSN"),
			DatastoreProject: firstNonEmpty(get("RAMTOOL_DATASTORE_PROJECT"), get("GOOGLE_CLOUD_PROJECT")),
		},
	}

	if raw := get("RAMTOOL_LOG_LEVEL"); raw != "" {
		level, err := logging.ParseLogLevel(raw)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	if raw := get("RAMTOOL_CACHE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("RAMTOOL_CACHE_SIZE must be a non-negative integer, got %q", raw)
		}
		cfg.CacheSize = size
	}

	return cfg, nil
}

// Validate checks that the selected store has what it needs.  Only serve
// needs a store, so the other commands never call it.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case StoreFile:
		if c.Store.DataDir == "" {
			return fmt.Errorf("file store requires RAMTOOL_DATA_DIR")
		}
	case StoreMemory:
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("postgres store requires RAMTOOL_PG_DSN")
		}
	case StoreDatastore:
		if c.Store.DatastoreProject == "" {
			return fmt.Errorf("datastore store requires RAMTOOL_DATASTORE_PROJECT")
		}
	default:
		return fmt.Errorf("unknown store %q (want file, memory, postgres or datastore)", c.Store.Kind)
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ramtool"
	}
	return filepath.Join(home, ".ramtool", "scenarios")
}

func normalizeAddr(addr string) string {
	if strings.Contains(addr, ":") {
		return addr
	}
	return ":" + addr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
