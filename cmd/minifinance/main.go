package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/Fikiresilase/mini-finance/internal/app"
	"github.com/Fikiresilase/mini-finance/internal/catalog"
	"github.com/Fikiresilase/mini-finance/internal/dashboard"
	"github.com/Fikiresilase/mini-finance/internal/ledger"
	"github.com/Fikiresilase/mini-finance/internal/store"
	"github.com/Fikiresilase/mini-finance/internal/trend"
	"github.com/Fikiresilase/mini-finance/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	st := store.New(store.NewRedisKV(redisClient), logger)
	if first, err := st.FirstLaunch(ctx); err != nil {
		logger.Warn("first launch check", slog.Any("error", err))
	} else if first {
		logger.Info("first launch, collections start empty")
	}

	trendCache := trend.NewCache(redisClient, cfg.TrendCacheTTL)
	trendService := trend.NewService(st, trendCache)
	ledgerService := ledger.NewService(st, logger)

	soldHooks := []catalog.SoldHook{trendService}
	var enqueuer *jobs.Enqueuer
	if cfg.WarmupOnSell {
		enqueuer = jobs.NewEnqueuer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, logger)
		defer func() {
			if err := enqueuer.Close(); err != nil {
				logger.Warn("enqueuer close", slog.Any("error", err))
			}
		}()
		soldHooks = append(soldHooks, enqueuer)
	}

	catalogService := catalog.NewService(st, ledgerService, logger, soldHooks...)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CatalogHandler:   catalog.NewHandler(logger, catalogService),
		LedgerHandler:    ledger.NewHandler(logger, ledgerService),
		TrendHandler:     trend.NewHandler(logger, trendService),
		DashboardHandler: dashboard.NewHandler(logger, ledgerService, trendService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
