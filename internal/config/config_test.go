package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"
  max_body_bytes: 1048576

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2
  tx_timeout: "5s"

log:
  level: "debug"
  format: "text"

import:
  max_entries: 500
  default_source: "kajweb"
  batch_retention_days: 30
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}
	if cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("server.max_body_bytes = %d, want %d", cfg.Server.MaxBodyBytes, 1<<20)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Database.TxTimeout != 5*time.Second {
		t.Errorf("database.tx_timeout = %v, want 5s", cfg.Database.TxTimeout)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Import
	if cfg.Import.MaxEntries != 500 {
		t.Errorf("import.max_entries = %d, want 500", cfg.Import.MaxEntries)
	}
	if cfg.Import.DefaultSource != "kajweb" {
		t.Errorf("import.default_source = %q, want %q", cfg.Import.DefaultSource, "kajweb")
	}
	if cfg.Import.BatchRetentionDays != 30 {
		t.Errorf("import.batch_retention_days = %d, want 30", cfg.Import.BatchRetentionDays)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("IMPORT_MAX_ENTRIES", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Import.MaxEntries != 42 {
		t.Errorf("import.max_entries = %d, want 42 (ENV override)", cfg.Import.MaxEntries)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	// Unset CONFIG_PATH so the fallback path is used and simply absent.
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Database.TxTimeout != 30*time.Second {
		t.Errorf("database.tx_timeout = %v, want 30s (default)", cfg.Database.TxTimeout)
	}
	if cfg.Import.MaxEntries != 20000 {
		t.Errorf("import.max_entries = %d, want 20000 (default)", cfg.Import.MaxEntries)
	}
	if cfg.Import.BatchRetentionDays != 90 {
		t.Errorf("import.batch_retention_days = %d, want 90 (default)", cfg.Import.BatchRetentionDays)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestRead_OptionalFileMissingFallsBackToEnv(t *testing.T) {
	t.Setenv("IMPORT_DEFAULT_SOURCE", "env-source")

	var cfg ImportConfig
	if err := Read(filepath.Join(t.TempDir(), "absent.yaml"), false, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultSource != "env-source" {
		t.Errorf("default_source = %q, want %q", cfg.DefaultSource, "env-source")
	}
	if cfg.MaxEntries != 20000 {
		t.Errorf("max_entries = %d, want 20000 (default)", cfg.MaxEntries)
	}
}

func TestRead_RequiredFileMissing(t *testing.T) {
	var cfg ImportConfig
	if err := Read(filepath.Join(t.TempDir(), "absent.yaml"), true, &cfg); err == nil {
		t.Fatal("expected error for missing required file")
	}
}

func TestRead_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.yaml")
	if err := os.WriteFile(path, []byte("max_entries: 10\ndefault_source: file-source\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("IMPORT_MAX_ENTRIES", "77")

	var cfg ImportConfig
	if err := Read(path, true, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxEntries != 77 {
		t.Errorf("max_entries = %d, want 77 (ENV override)", cfg.MaxEntries)
	}
	if cfg.DefaultSource != "file-source" {
		t.Errorf("default_source = %q, want %q", cfg.DefaultSource, "file-source")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "body limit zero", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, wantErr: true},
		{name: "max conns zero", mutate: func(c *Config) { c.Database.MaxConns = 0 }, wantErr: true},
		{name: "min conns above max", mutate: func(c *Config) { c.Database.MinConns = 50 }, wantErr: true},
		{name: "negative tx timeout", mutate: func(c *Config) { c.Database.TxTimeout = -time.Second }, wantErr: true},
		{name: "tx timeout disabled", mutate: func(c *Config) { c.Database.TxTimeout = 0 }},
		{name: "max entries zero", mutate: func(c *Config) { c.Import.MaxEntries = 0 }, wantErr: true},
		{name: "retention zero", mutate: func(c *Config) { c.Import.BatchRetentionDays = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			MaxBodyBytes: 1 << 20,
		},
		Database: DatabaseConfig{
			DSN:       "postgres://u:p@localhost:5432/testdb",
			MaxConns:  25,
			MinConns:  5,
			TxTimeout: 30 * time.Second,
		},
		Import: ImportConfig{
			MaxEntries:         20000,
			BatchRetentionDays: 90,
		},
	}
}
