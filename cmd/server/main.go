package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/api"
	"github.com/rohits-web03/nudge/internal/api/handlers"
	"github.com/rohits-web03/nudge/internal/api/services"
	"github.com/rohits-web03/nudge/internal/breach"
	"github.com/rohits-web03/nudge/internal/codec"
	"github.com/rohits-web03/nudge/internal/config"
	"github.com/rohits-web03/nudge/internal/logger"
	"github.com/rohits-web03/nudge/internal/repositories"
	"github.com/rohits-web03/nudge/internal/scheduler"
	"github.com/rohits-web03/nudge/internal/twofa"
)

// @title Nudge API
// @version 1.0
// @description Schedules security nudges for a browser extension.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := codec.NewAESCodec([]byte(cfg.EncryptionKey))
	if err != nil {
		return fmt.Errorf("codec: %w", err)
	}

	store, err := openStore(cfg, zl)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	directory := loadDirectory(ctx, cfg, zl)
	zl.Info("2fa directory ready", zap.Int("entries", directory.Len()))

	var remediator services.Remediator = services.NoRemediation{}
	if cfg.TextGenAPIKey != "" {
		remediator = services.NewTextGenClient(cfg.TextGenAPIURL, cfg.TextGenModel, cfg.TextGenAPIKey, zl)
	}

	svc := scheduler.New(
		store,
		c,
		breach.NewClient(cfg.BreachAPIURL, cfg.BreachAPIKey, zl),
		directory,
		scheduler.NewSurveyTokens(cfg.SurveySecret()),
		zl,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(handlers.New(svc, remediator, zl), cfg, zl),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting nudge server", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		zl.Info("shutdown signal received")
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shCtx); err != nil {
		zl.Warn("http server shutdown error", zap.Error(err))
	}
	return nil
}

// openStore connects to Postgres when DB_URL is set and falls back to the
// in-memory store otherwise.
func openStore(cfg config.Config, zl *zap.Logger) (repositories.Store, error) {
	if cfg.DBURL == "" {
		zl.Warn("DB_URL not set, using in-memory store")
		return repositories.NewMemoryStore(), nil
	}
	store, err := repositories.ConnectDatabase(cfg.DBURL, zl)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return store, nil
}

// loadDirectory prefers a local file, then the R2 bucket, then the embedded
// copy. Failures fall through to the next source.
func loadDirectory(ctx context.Context, cfg config.Config, zl *zap.Logger) *twofa.Directory {
	if cfg.TwoFADirectoryFile != "" {
		d, err := twofa.LoadFile(cfg.TwoFADirectoryFile)
		if err == nil {
			return d
		}
		zl.Warn("2fa directory file unusable", zap.String("path", cfg.TwoFADirectoryFile), zap.Error(err))
	}

	if cfg.R2.Enabled() {
		bucket := repositories.NewR2Bucket(
			cfg.R2.AccessKeyID,
			cfg.R2.SecretAccessKey,
			cfg.R2.AccountID,
			cfg.R2.BucketName,
			cfg.R2.Region,
		)
		fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		d, err := twofa.LoadRemote(fetchCtx, bucket, cfg.R2.DirectoryKey)
		if err == nil {
			return d
		}
		zl.Warn("2fa directory fetch failed", zap.String("key", cfg.R2.DirectoryKey), zap.Error(err))
	}

	return twofa.Default()
}
