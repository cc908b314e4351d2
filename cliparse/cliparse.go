package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/footprint/climatiq"
	"github.com/danielhkuo/footprint/models"
	"github.com/danielhkuo/footprint/offsets"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	ClimatiqAPIKey     string
	ClimatiqAPIURL     string
	GoldStandardAPIKey string
	GoldStandardAPIURL string

	OffsetCatalog    string
	StaticDir        string
	RequestTimeout   time.Duration
	BatchConcurrency int
	LogLevel         string
}

// LoadDotEnv loads environment variables from .env files without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("footprint", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (memory, sqlite or postgres)")

	// Upstream APIs (prefer env for keys, but allow CLI for dev)
	fs.StringVar(&cfg.ClimatiqAPIKey, "climatiq-key", "", "Climatiq API key (prefer env)")
	fs.StringVar(&cfg.ClimatiqAPIURL, "climatiq-url", "", "Climatiq API base URL")
	fs.StringVar(&cfg.GoldStandardAPIKey, "goldstandard-key", "", "Gold Standard API key (prefer env)")
	fs.StringVar(&cfg.GoldStandardAPIURL, "goldstandard-url", "", "Gold Standard API base URL")

	fs.StringVar(&cfg.OffsetCatalog, "catalog", "", "Offset catalog YAML file")
	fs.StringVar(&cfg.StaticDir, "static", "", "Directory of web client files to serve")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Upstream request timeout")
	fs.IntVar(&cfg.BatchConcurrency, "batch-concurrency", 0, "Concurrent upstream calls per batch")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = models.DatabaseMemory
		}
	}
	switch cfg.DatabaseType {
	case models.DatabaseMemory, models.DatabaseSQLite, models.DatabasePostgres:
	default:
		return Config{}, fmt.Errorf("unknown database type %q (use memory, sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != models.DatabaseMemory {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	cfg.ClimatiqAPIKey = orEnv(cfg.ClimatiqAPIKey, "CLIMATIQ_API_KEY", "")
	cfg.ClimatiqAPIURL = orEnv(cfg.ClimatiqAPIURL, "CLIMATIQ_API_URL", climatiq.DefaultBaseURL)
	cfg.GoldStandardAPIKey = orEnv(cfg.GoldStandardAPIKey, "GOLD_STANDARD_API_KEY", "")
	cfg.GoldStandardAPIURL = orEnv(cfg.GoldStandardAPIURL, "GOLD_STANDARD_API_URL", offsets.DefaultBaseURL)
	cfg.OffsetCatalog = orEnv(cfg.OffsetCatalog, "OFFSET_CATALOG", "")
	cfg.StaticDir = orEnv(cfg.StaticDir, "STATIC_DIR", "")
	cfg.LogLevel = orEnv(cfg.LogLevel, "LOG_LEVEL", "info")

	if cfg.RequestTimeout == 0 {
		if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid REQUEST_TIMEOUT env variable")
			}
			cfg.RequestTimeout = d
		} else {
			cfg.RequestTimeout = 30 * time.Second
		}
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, errors.New("request timeout must not be negative")
	}

	if cfg.BatchConcurrency == 0 {
		if s := os.Getenv("BATCH_CONCURRENCY"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid BATCH_CONCURRENCY env variable")
			}
			cfg.BatchConcurrency = n
		} else {
			cfg.BatchConcurrency = 4
		}
	}
	if cfg.BatchConcurrency < 1 {
		return Config{}, errors.New("batch concurrency must be at least 1")
	}

	return cfg, nil
}

func orEnv(value, key, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
