package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirehub/internal/auth"
	"hirehub/internal/config"
	"hirehub/internal/jobs"
	"hirehub/internal/logger"
	"hirehub/internal/server"
	"hirehub/internal/storage/blob"
	"hirehub/internal/storage/postgres"
	"hirehub/internal/storage/redis"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, env vars win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting hirehub",
		zap.String("log_level", cfg.LogLevel),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.Migrate(migrateCtx); err != nil {
		cancelMigrate()
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	cancelMigrate()

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	blobs, err := blob.New(cfg.UploadDir, cfg.PublicBaseURL, log)
	if err != nil {
		log.Fatal("failed to init blob store", zap.Error(err))
	}

	authSvc := auth.New(store, cache, blobs, cfg.SessionTTL, log)
	jobSvc := jobs.New(store, blobs, log)

	srv := server.New(cfg, authSvc, jobSvc, authSvc, cache, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("server stopped with error", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down gracefully...")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}

	log.Info("server stopped")
}
