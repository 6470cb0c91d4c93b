package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/property-forecast/internal/cache"
	"github.com/iwvelando/property-forecast/internal/config"
	"github.com/iwvelando/property-forecast/internal/forecast"
	"github.com/iwvelando/property-forecast/internal/server"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/neighborhood"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func newLogger(cfg config.LoggingConfig, override string) (*zap.Logger, error) {
	level := cfg.Level
	if override != "" {
		level = override
	}
	if level == "" {
		level = "info"
	}
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var zcfg zap.Config
	switch cfg.Format {
	case "", "json":
		zcfg = zap.NewProductionConfig()
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel)
	if cfg.OutputFile != "" {
		zcfg.OutputPaths = []string{cfg.OutputFile}
		zcfg.ErrorOutputPaths = []string{cfg.OutputFile}
	}
	return zcfg.Build()
}

func newCache(ctx context.Context, cfg server.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case server.CacheMemory:
		return cache.NewMemory(cfg.TTL()), nil
	case server.CacheRedis:
		r := cache.NewRedis(cfg.RedisAddr, cfg.Password, cfg.DB, cfg.TTL())
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		return r, nil
	default:
		return nil, nil
	}
}

// buildHandler wires the API to an engine carrying the configured
// recommendation rules.
func buildHandler(logger *zap.Logger, cfg *server.Config, table *neighborhood.Table, store cache.Cache) http.Handler {
	return server.NewHandler(logger, cfg.RequestSizeBytes(), version, server.Options{
		Engine: forecast.NewEngine(logger, cfg.Recommendation),
		Table:  table,
		Cache:  store,
	})
}

// run serves on ln until ctx is cancelled, then shuts srv down and returns
// only once in-flight requests have drained or shutdownTimeout has passed.
func run(ctx context.Context, logger *zap.Logger, srv *http.Server, ln net.Listener) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.String("op", "main.run"), zap.Error(err))
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	maxRequestSize := flag.String("max-request-size", "", "maximum request body size override, e.g. 512K")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *address != "" {
		cfg.Address = *address
	}
	if *maxRequestSize != "" {
		size, err := server.ParseSize(*maxRequestSize)
		if err != nil {
			logger.Fatal("invalid max request size", zap.String("op", "main"), zap.Error(err))
		}
		cfg.SetRequestSizeBytes(size)
	}

	var table *neighborhood.Table
	if cfg.Data.Neighborhoods != "" {
		table, err = neighborhood.Load(cfg.Data.Neighborhoods)
		if err != nil {
			logger.Fatal("failed to load neighborhood data", zap.String("op", "main"), zap.Error(err))
		}
		if cfg.Data.Listings != "" {
			if err := table.LoadListings(cfg.Data.Listings); err != nil {
				logger.Fatal("failed to load listings", zap.String("op", "main"), zap.Error(err))
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newCache(ctx, cfg.Cache)
	if err != nil {
		logger.Fatal("failed to initialize cache", zap.String("op", "main"), zap.Error(err))
	}
	if store != nil {
		defer func() {
			_ = store.Close()
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           buildHandler(logger, cfg, table, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("op", "main"), zap.String("address", cfg.Address), zap.Error(err))
	}

	logger.Info("starting server",
		zap.String("op", "main"),
		zap.String("address", ln.Addr().String()),
		zap.Int64("maxRequestSize", cfg.RequestSizeBytes()),
		zap.String("cache", cfg.Cache.Backend),
		zap.String("version", version),
	)
	if err := run(ctx, logger, srv, ln); err != nil {
		logger.Fatal("server stopped", zap.String("op", "main"), zap.Error(err))
	}
	logger.Info("server stopped", zap.String("op", "main"))
}
