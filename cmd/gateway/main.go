package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/inventory-agent/internal/agent"
	"github.com/dileep-u-k/inventory-agent/internal/bootstrap"
	"github.com/dileep-u-k/inventory-agent/internal/cache"
	"github.com/dileep-u-k/inventory-agent/internal/config"
	"github.com/dileep-u-k/inventory-agent/internal/logging"
	"github.com/dileep-u-k/inventory-agent/internal/version"
)

// main is the composition root: it loads configuration, builds every
// service, injects dependencies and runs the server until a signal arrives.
func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	buildInfo := version.GetBuildInfo()
	logger.Infof("🚀 Starting Inventory Gateway | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(cfg.Catalog)
	if err != nil {
		logger.Fatalf("❌ FATAL: %v", err)
	}
	defer store.Close()
	logger.Infof("✅ Catalog opened (%s driver).", cfg.Catalog.Driver)

	responseCache := initializeCache(ctx, cfg.Redis, logger)

	client, err := bootstrap.NewLLMClient(ctx, cfg.LLM)
	if err != nil {
		logger.Fatalf("❌ FATAL: %v", err)
	}
	var ag *agent.Agent
	var health *healthMonitor
	if client != nil {
		ag = bootstrap.NewAgent(client, store, cfg, logger)
		health = newHealthMonitor(client, cfg.LLM.Model, logger)
		go health.run(ctx, healthCheckInterval)
		logger.Infof("✅ Agent ready (%s, %s).", cfg.LLM.Provider, cfg.LLM.Model)
	} else {
		logger.Warnf("⚠️ No LLM provider configured; /api/v1/chat will return 503.")
	}

	gin.SetMode(os.Getenv("GIN_MODE"))
	handler := NewGatewayHandler(store, ag, responseCache, health, logger)
	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: newRouter(handler)}

	runServerWithGracefulShutdown(ctx, srv, cfg.Server, logger)
}

// initializeCache connects to Redis when an address is configured. A failed
// connection degrades to no caching.
func initializeCache(ctx context.Context, cfg config.RedisConfig, logger logging.Logger) cache.Cache {
	if cfg.Addr == "" {
		logger.Infof("Redis address not set; response caching disabled.")
		return cache.Noop{}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf("⚠️ Could not connect to Redis at %s, caching disabled: %v", cfg.Addr, err)
		_ = rdb.Close()
		return cache.Noop{}
	}
	logger.Infof("✅ Connected to Redis at %s.", cfg.Addr)
	return cache.NewRedisCache(rdb, cfg.TTL, logger)
}

func runServerWithGracefulShutdown(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger logging.Logger) {
	go func() {
		logger.Infof("👂 Gateway is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("❌ Listen error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("❌ Server shutdown failed: %v", err)
		return
	}
	logger.Infof("👋 Server exited gracefully.")
}
