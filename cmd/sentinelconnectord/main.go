package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/racelabs/sentinel-connector/internal/adminapi"
	"github.com/racelabs/sentinel-connector/internal/connector"
)

// version, commit, and buildTime are injected at build time via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var envFile string
	var adminAddr string
	var logLevel string
	var showVersion bool
	flag.StringVar(&envFile, "env-file", "", "Path to .env file (default: .env)")
	flag.StringVar(&adminAddr, "admin-listen", ":9090", "Admin HTTP listen address (/healthz, /metrics)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("%s (commit=%s, built=%s)\n", version, commit, buildTime)
		os.Exit(0)
	}

	startTime := time.Now()

	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	cfg, err := connector.LoadConfig()
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	level := zerolog.InfoLevel
	if logLevel != "" {
		if parsed, err := zerolog.ParseLevel(logLevel); err == nil {
			level = parsed
		}
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().
		Str("version", version).
		Str("commit", commit).
		Str("built", buildTime).
		Msg("sentinel-connector starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn := connector.New(cfg, log)
	conn.Start(ctx)
	defer conn.Stop()

	adminLog := log.With().Str("component", "adminapi").Logger()
	srv := adminapi.NewServer(adminapi.ServerOptions{
		Addr:      adminAddr,
		Source:    conn,
		Stats:     conn,
		StartTime: startTime,
		Log:       adminLog,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	log.Info().
		Str("admin_listen", adminAddr).
		Dur("startup_ms", time.Since(startTime)).
		Msg("sentinel-connector ready")

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("admin http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("admin http server shutdown error")
	}

	log.Info().Msg("sentinel-connector stopped")
}
