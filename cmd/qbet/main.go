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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/qbet/internal/app"
	"github.com/kailas-cloud/qbet/internal/config"
	"github.com/kailas-cloud/qbet/internal/domain"
	logpkg "github.com/kailas-cloud/qbet/internal/logger"
	"github.com/kailas-cloud/qbet/internal/metrics"
	chiTransport "github.com/kailas-cloud/qbet/internal/transport/chi"
	healthuc "github.com/kailas-cloud/qbet/internal/usecase/health"
	searchuc "github.com/kailas-cloud/qbet/internal/usecase/search"
	"github.com/kailas-cloud/qbet/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting qbet API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("recognizer", cfg.Recognizer.Provider),
	)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.NewStore(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	// Registered explicitly, not in init().
	metrics.RegisterSearchMetrics()

	snapshot, err := app.NewCatalog(ctx, cfg.Catalog, store, cfg.Database.KeyPrefix, logger)
	if err != nil {
		return err
	}
	if err := snapshot.Start(ctx, cfg.Catalog.Refresh); err != nil {
		return fmt.Errorf("schedule catalog refresh: %w", err)
	}
	defer snapshot.Stop()

	recognizer, err := app.NewRecognizer(cfg.Recognizer, store, cfg.Database.KeyPrefix, logger)
	if err != nil {
		return err
	}

	searchSvc := app.NewSearchService(cfg.Search, snapshot, recognizer, logger)

	// Pass a nil interface (not a typed nil) when no recognizer is configured.
	var recognizerChecker healthuc.RecognizerChecker
	if hc, ok := recognizer.(domain.HealthChecker); ok {
		recognizerChecker = hc
	}
	healthSvc := healthuc.New(store, snapshot, recognizerChecker)

	server := chiTransport.NewServer(searchSvc, snapshot, healthSvc, chiTransport.Options{
		MaxQueryLength: cfg.Search.MaxQueryLength,
		TopSkills:      cfg.Search.TopSkills,
	}, logger)

	batch, err := searchuc.NewBatch(searchSvc, cfg.Search.BatchWorkers, cfg.Search.MaxBatchSize, logger)
	if err != nil {
		return fmt.Errorf("create batch pool: %w", err)
	}
	defer batch.Release()
	server.WithBatch(batch)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
