// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every variable ParseFlags reads; empty counts as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE",
		"CLIMATIQ_API_KEY", "CLIMATIQ_API_URL",
		"GOLD_STANDARD_API_KEY", "GOLD_STANDARD_API_URL",
		"OFFSET_CATALOG", "STATIC_DIR", "REQUEST_TIMEOUT",
		"BATCH_CONCURRENCY", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "memory" {
		t.Errorf("expected memory store, got %q", cfg.DatabaseType)
	}
	if cfg.ClimatiqAPIURL != "https://api.climatiq.io" {
		t.Errorf("unexpected Climatiq URL %q", cfg.ClimatiqAPIURL)
	}
	if cfg.GoldStandardAPIURL != "https://api.goldstandard.org" {
		t.Errorf("unexpected Gold Standard URL %q", cfg.GoldStandardAPIURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.BatchConcurrency != 4 {
		t.Errorf("expected batch concurrency 4, got %d", cfg.BatchConcurrency)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("CLIMATIQ_API_KEY", "cq-key")
	t.Setenv("GOLD_STANDARD_API_KEY", "gs-key")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("BATCH_CONCURRENCY", "8")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" || cfg.DatabaseURL != "postgres://test" {
		t.Errorf("unexpected database config %q %q", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.ClimatiqAPIKey != "cq-key" || cfg.GoldStandardAPIKey != "gs-key" {
		t.Errorf("API keys not read from env: %q %q", cfg.ClimatiqAPIKey, cfg.GoldStandardAPIKey)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.BatchConcurrency != 8 {
		t.Errorf("expected batch concurrency 8, got %d", cfg.BatchConcurrency)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CLIMATIQ_API_KEY", "env-key")

	cfg, err := ParseFlags([]string{"-p", "8080", "-t", "sqlite", "-d", "file:test.db", "-climatiq-key", "cli-key"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.ClimatiqAPIKey != "cli-key" {
		t.Errorf("CLI should override env: expected cli-key, got %q", cfg.ClimatiqAPIKey)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"unknown database type", nil, []string{"-t", "mongo"}},
		{"sqlite without URL", nil, []string{"-t", "sqlite"}},
		{"bad PORT env", map[string]string{"PORT": "abc"}, nil},
		{"bad timeout env", map[string]string{"REQUEST_TIMEOUT": "soon"}, nil},
		{"negative timeout", nil, []string{"-timeout", "-1s"}},
		{"bad concurrency env", map[string]string{"BATCH_CONCURRENCY": "many"}, nil},
		{"negative concurrency", nil, []string{"-batch-concurrency", "-2"}},
		{"unknown flag", nil, []string{"-admin-salt", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PORT=5000\nCLIMATIQ_API_KEY=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// CLIMATIQ_API_KEY is set (to empty) by clearEnv, so unset it for the file to apply
	os.Unsetenv("CLIMATIQ_API_KEY")

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("PORT"); got != "4000" {
		t.Errorf("existing env should win: expected 4000, got %q", got)
	}
	if got := os.Getenv("CLIMATIQ_API_KEY"); got != "from-file" {
		t.Errorf("expected key from file, got %q", got)
	}
	os.Unsetenv("CLIMATIQ_API_KEY")
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}
