package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hackgods/clinic-records-api/internal/clinic"
	"github.com/hackgods/clinic-records-api/internal/config"
	"github.com/hackgods/clinic-records-api/internal/db"
	"github.com/hackgods/clinic-records-api/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	logger := logging.Setup(cfg.Env, cfg.LogLevel, "expiry-worker")
	log.Info().
		Str("env", cfg.Env).
		Str("schedule", cfg.WorkerSchedule).
		Dur("window", cfg.MedicineExpiryWindow).
		Msg("expiry-worker starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(rootCtx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.Storage).Msg("expiry-worker store error")
	}
	defer closeStore()

	// Reads only; the report never goes through the cache.
	svc := clinic.NewService(store, nil, cfg)

	job := func() { runOnce(rootCtx, svc, cfg.MedicineExpiryWindow) }

	c := cron.New(cron.WithLogger(cronLogger{logger}), cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})))
	if _, err := c.AddFunc(cfg.WorkerSchedule, job); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.WorkerSchedule).Msg("invalid worker schedule")
	}

	// Run once at startup
	job()

	c.Start()
	<-rootCtx.Done()

	log.Info().Msg("shutdown signal received, stopping expiry worker")
	<-c.Stop().Done()
}

// errMemoryStorage is returned for STORAGE=memory: a process-local store never
// holds the medicines the api-server wrote, so every report would be empty.
var errMemoryStorage = errors.New("the expiry report needs STORAGE=postgres, an in-memory store only sees its own process")

func openStore(ctx context.Context, cfg config.Config) (clinic.Store, func(), error) {
	if cfg.Storage == config.StorageMemory {
		return nil, nil, errMemoryStorage
	}

	pgCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("connected to Postgres")
	return clinic.NewPgStore(pool), pool.Close, nil
}

func runOnce(ctx context.Context, svc *clinic.Service, window time.Duration) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	cutoff := clinic.NewDate(start.Add(window))

	medicines, err := svc.ListMedicinesExpiringBefore(runCtx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("expiry run error")
		return
	}

	for _, m := range medicines {
		log.Warn().
			Int64("medicine_id", m.ID).
			Str("name", m.Name).
			Str("expiry_date", m.ExpiryDate.String()).
			Int("stock", m.Stock).
			Msg("medicine expiring")
	}

	log.Info().
		Int("expiring", len(medicines)).
		Str("cutoff", cutoff.String()).
		Dur("took", time.Since(start)).
		Msg("expiry run complete")
}

// cronLogger routes cron's own messages through zerolog.
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
