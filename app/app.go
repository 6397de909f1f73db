package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"htmx-tictactoe/config"
	"htmx-tictactoe/events"
	"htmx-tictactoe/game"
	"htmx-tictactoe/handlers"
	"htmx-tictactoe/templates"
	"htmx-tictactoe/tui"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// Run starts the configured frontend and blocks until it exits or a signal arrives.
func Run(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if conf.Mode == config.ModeTUI {
		return tui.New(game.NewController(game.NewID())).Run(ctx)
	}

	store, closeStore, err := NewStore(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	return serveHTTP(ctx, logger, conf, store)
}

// NewStore builds the configured game store and its cleanup func.
func NewStore(ctx context.Context, logger *slog.Logger, conf *config.Config) (game.Store, func(), error) {
	log := logger.With("component", "store")

	if conf.Store.Driver != config.StoreRedis {
		log.Info("Using in-memory store", "ttl", conf.Store.TTL)
		return game.NewMemoryStore(conf.Store.TTL), func() {}, nil
	}

	addr := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	client, err := game.ConnectRedis(ctx, &redis.Options{
		Addr:     addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis store", "addr", addr, "ttl", conf.Store.TTL)
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}
	return game.NewRedisStore(client, conf.Store.TTL), closeFn, nil
}

func serveHTTP(ctx context.Context, logger *slog.Logger, conf *config.Config, store game.Store) error {
	log := logger.With("component", "app")

	gin.SetMode(conf.GinMode)

	h := handlers.New(logger, store, events.NewHub(), templates.MustLoad(), conf.SSE.Heartbeat)
	srv := &http.Server{
		Addr:              ":" + conf.HTTPPort,
		Handler:           handlers.NewRouter(logger, h),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErrCh <- err
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return nil
}
