package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/footprint/climatiq"
	"github.com/danielhkuo/footprint/cliparse"
	"github.com/danielhkuo/footprint/db"
	"github.com/danielhkuo/footprint/middleware"
	"github.com/danielhkuo/footprint/models"
	"github.com/danielhkuo/footprint/offsets"
	"github.com/danielhkuo/footprint/router"
	"github.com/danielhkuo/footprint/store"
)

func main() {
	var err error

	// Load .env before reading flags so env fallbacks see it
	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		slog.Error("invalid log level", "level", cfg.LogLevel, "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Record store
	var st store.Store
	if cfg.DatabaseType == models.DatabaseMemory {
		st = store.NewMemoryStore(time.Now)
		slog.Info("Using in-memory store; records are lost on restart")
	} else {
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Create schema (tables)
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		st = store.NewSQLStore(dbConn, time.Now)
	}

	// Upstream clients
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	if cfg.ClimatiqAPIKey == "" {
		slog.Warn("CLIMATIQ_API_KEY is not set; emission calculations will fail")
	}
	calc := climatiq.NewClient(cfg.ClimatiqAPIURL, cfg.ClimatiqAPIKey, httpClient)

	catalog, err := offsets.LoadCatalog(cfg.OffsetCatalog)
	if err != nil {
		slog.Error("offset catalog failed to load", "path", cfg.OffsetCatalog, "error", err)
		os.Exit(1)
	}
	offs := offsets.NewClient(cfg.GoldStandardAPIURL, cfg.GoldStandardAPIKey, httpClient, catalog)
	if !offs.Configured() {
		slog.Warn("GOLD_STANDARD_API_KEY is not set; offset suggestions use the built-in catalog")
	}

	// Create router
	mux := router.NewRouter(st, calc, offs, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(middleware.Recover(mux)),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "store", cfg.DatabaseType)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
