package config

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultEnv         = "dev"
	defaultPort        = "8080"
	defaultStoreDriver = StoreSQLite
	defaultDBPath      = "./dev.db"
	defaultTheme       = "light"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds application configuration sourced from environment variables
// and an optional config file.
type Config struct {
	Env             string
	Port            string
	StoreDriver     string
	DBPath          string
	DatabaseDSN     string
	PersistRemovals bool
	DefaultTheme    string
	SeedDemo        bool
	MetricsEnabled  bool
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == "dev" || c.Env == "development"
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	v := newViper()
	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("config file not loaded", "path", path, "err", err)
		}
	}

	return fromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("port", defaultPort)
	v.SetDefault("store_driver", defaultStoreDriver)
	v.SetDefault("db_path", defaultDBPath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("persist_removals", true)
	v.SetDefault("default_theme", defaultTheme)
	v.SetDefault("seed_demo", false)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("config_file", "")
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) Config {
	cfg := Config{
		Env:             v.GetString("app_env"),
		Port:            v.GetString("port"),
		StoreDriver:     strings.ToLower(strings.TrimSpace(v.GetString("store_driver"))),
		DBPath:          v.GetString("db_path"),
		DatabaseDSN:     v.GetString("database_dsn"),
		PersistRemovals: v.GetBool("persist_removals"),
		DefaultTheme:    strings.ToLower(strings.TrimSpace(v.GetString("default_theme"))),
		SeedDemo:        v.GetBool("seed_demo"),
		MetricsEnabled:  v.GetBool("metrics_enabled"),
	}

	switch cfg.StoreDriver {
	case StoreSQLite, StorePostgres, StoreMemory:
	default:
		slog.Warn("unknown STORE_DRIVER, falling back", "driver", cfg.StoreDriver, "fallback", defaultStoreDriver)
		cfg.StoreDriver = defaultStoreDriver
	}

	if cfg.StoreDriver == StorePostgres && cfg.DatabaseDSN == "" {
		slog.Warn("DATABASE_DSN is not set, falling back to sqlite")
		cfg.StoreDriver = StoreSQLite
	}
	if cfg.DefaultTheme != "dark" && cfg.DefaultTheme != "light" {
		slog.Warn("DEFAULT_THEME must be dark or light", "value", cfg.DefaultTheme)
		cfg.DefaultTheme = defaultTheme
	}
	if !cfg.PersistRemovals {
		slog.Warn("PERSIST_REMOVALS is off: removed materials reappear after a restart")
	}

	return cfg
}
