package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/appointment-scheduler/internal/db"
	"github.com/BruksfildServices01/appointment-scheduler/internal/logger"
	"github.com/BruksfildServices01/appointment-scheduler/internal/ratelimit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/routes"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	limiter, closeLimiter := newLimiter(cfg, log)
	defer closeLimiter()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    dispatcher,
		Limiter:  limiter,
		Registry: registry,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newLimiter uses Redis when configured so all instances share one budget.
func newLimiter(cfg *config.Config, log *zap.Logger) (ratelimit.Limiter, func()) {
	if cfg.RedisAddr == "" {
		log.Info("rate limiter: in-memory")
		return ratelimit.NewMemoryLimiter(cfg.RateLimitPerMin, time.Minute), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable at startup, limiter will fail open until it recovers", zap.Error(err))
	} else {
		log.Info("rate limiter: redis", zap.String("addr", cfg.RedisAddr))
	}

	return ratelimit.NewRedisLimiter(rdb, cfg.RateLimitPerMin, time.Minute, "scheduler:rl"), func() { _ = rdb.Close() }
}
