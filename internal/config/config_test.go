package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "STORE_DRIVER", "DB_PATH", "DATABASE_DSN",
		"PERSIST_REMOVALS", "DEFAULT_THEME", "SEED_DEMO", "METRICS_ENABLED", "CONFIG_FILE",
	} {
		unsetEnv(t, key)
	}
}

func TestFromViper_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := fromViper(newViper())

	if cfg.Port != "8080" {
		t.Fatalf("Port=%q, want 8080", cfg.Port)
	}
	if cfg.StoreDriver != StoreSQLite {
		t.Fatalf("StoreDriver=%q, want %q", cfg.StoreDriver, StoreSQLite)
	}
	if cfg.DBPath != "./dev.db" {
		t.Fatalf("DBPath=%q, want ./dev.db", cfg.DBPath)
	}
	if !cfg.PersistRemovals {
		t.Fatalf("expected PersistRemovals to default to true")
	}
	if cfg.DefaultTheme != "light" {
		t.Fatalf("DefaultTheme=%q, want light", cfg.DefaultTheme)
	}
	if !cfg.MetricsEnabled || cfg.SeedDemo {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected dev environment by default")
	}
}

func TestFromViper_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("PERSIST_REMOVALS", "false")
	t.Setenv("DEFAULT_THEME", "dark")
	t.Setenv("SEED_DEMO", "true")

	cfg := fromViper(newViper())

	if cfg.Port != "9090" || cfg.StoreDriver != StoreMemory {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.PersistRemovals {
		t.Fatalf("expected PersistRemovals=false")
	}
	if cfg.DefaultTheme != "dark" || !cfg.SeedDemo {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.IsDev() {
		t.Fatalf("production must not be dev")
	}
}

func TestFromViper_PostgresWithoutDSNFallsBackToSQLite(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")

	cfg := fromViper(newViper())

	if cfg.StoreDriver != StoreSQLite {
		t.Fatalf("StoreDriver=%q, want %q", cfg.StoreDriver, StoreSQLite)
	}
}

func TestFromViper_InvalidValuesFallBack(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("DEFAULT_THEME", "sepia")

	cfg := fromViper(newViper())

	if cfg.StoreDriver != StoreSQLite {
		t.Fatalf("StoreDriver=%q, want %q", cfg.StoreDriver, StoreSQLite)
	}
	if cfg.DefaultTheme != "light" {
		t.Fatalf("DefaultTheme=%q, want light", cfg.DefaultTheme)
	}
}

func TestFromViper_InvalidThemeWarning(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DEFAULT_THEME", "sepia")

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	fromViper(newViper())

	out := buf.String()
	if !strings.Contains(out, `msg="DEFAULT_THEME must be dark or light"`) {
		t.Fatalf("missing theme warning in %q", out)
	}
	if strings.Contains(out, "warning:") {
		t.Fatalf("level repeated in message: %q", out)
	}
}
