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
	"time"

	"mortgage-sim/config"
	httpLayer "mortgage-sim/http"
	"mortgage-sim/logging"
	"mortgage-sim/repository"
	"mortgage-sim/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewZapLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cache, closeCache := newCache(cfg.Cache, logger)
	defer closeCache()

	loanRepo := repository.NewLoanRepositoryMemory()
	loanService := service.NewLoanService(loanRepo, logger)
	loanHandler := httpLayer.NewLoanHandler(loanService, logger)

	simulationService := service.NewSimulationService(cache, cfg.Cache.TTL, logger)
	simulationHandler := httpLayer.NewSimulationHandler(simulationService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(loanHandler, simulationHandler, rateLimiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("error starting server", "error", err)
		return
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	logger.Info("server exited")
}

// newCache falls back to memory when Redis is unreachable at startup.
func newCache(cfg config.CacheConfig, logger logging.Logger) (repository.CacheRepository, func()) {
	if cfg.Backend != "redis" {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, using memory cache", "addr", cfg.RedisAddr, "error", err)
		redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	logger.Info("using redis cache", "addr", cfg.RedisAddr)
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Warn("error closing redis client", "error", err)
		}
	}
}
