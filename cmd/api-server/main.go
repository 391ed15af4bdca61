package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/hackgods/clinic-records-api/internal/api"
	"github.com/hackgods/clinic-records-api/internal/clinic"
	"github.com/hackgods/clinic-records-api/internal/config"
	"github.com/hackgods/clinic-records-api/internal/db"
	"github.com/hackgods/clinic-records-api/internal/logging"
	"github.com/hackgods/clinic-records-api/internal/memstore"
	redisclient "github.com/hackgods/clinic-records-api/internal/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	logging.Setup(cfg.Env, cfg.LogLevel, "api-server")
	log.Info().
		Str("env", cfg.Env).
		Str("http_port", cfg.HTTPPort).
		Str("storage", cfg.Storage).
		Bool("cache", cfg.CacheEnabled).
		Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	routerCfg := api.RouterConfig{Env: cfg.Env, Version: cfg.Version}

	var store clinic.Store
	switch cfg.Storage {
	case config.StorageMemory:
		store = memstore.New()
		log.Warn().Msg("using in-memory storage, data is lost on restart")
	default:
		pool := connectPostgres(rootCtx, cfg.PostgresDSN)
		defer pool.Close()
		store = clinic.NewPgStore(pool)
		routerCfg.Postgres = api.PingFunc(pool.Ping)
	}

	var cache clinic.Cache
	if cfg.CacheEnabled {
		rdb, err := redisclient.NewRedisClient(rootCtx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection error")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("error closing redis")
			}
		}()
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("connected to Redis")

		cache = redisclient.NewCache(rdb)
		routerCfg.Redis = redisPinger(rdb)
	}

	routerCfg.Service = clinic.NewService(store, cache, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(routerCfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
		}
	case <-rootCtx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("api-server stopped")
}

func connectPostgres(ctx context.Context, dsn string) *pgxpool.Pool {
	pgCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(pgCtx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	if err := db.EnsureSchema(pgCtx, pool); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("postgres schema error")
	}
	log.Info().Msg("connected to Postgres")
	return pool
}

func redisPinger(rdb *redis.Client) api.PingFunc {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
