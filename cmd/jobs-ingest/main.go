// Package main wires together the job ingestion binary.
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

	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/api"
	"github.com/jobfeeds/jobs-ingest/internal/config"
	"github.com/jobfeeds/jobs-ingest/internal/extract"
	"github.com/jobfeeds/jobs-ingest/internal/id/uuid"
	"github.com/jobfeeds/jobs-ingest/internal/jobs"
	"github.com/jobfeeds/jobs-ingest/internal/logging"
	"github.com/jobfeeds/jobs-ingest/internal/metrics"
	"github.com/jobfeeds/jobs-ingest/internal/pipeline"
	mongosink "github.com/jobfeeds/jobs-ingest/internal/sink/mongo"
	pgsink "github.com/jobfeeds/jobs-ingest/internal/sink/postgres"
	redissink "github.com/jobfeeds/jobs-ingest/internal/sink/redis"
	"github.com/jobfeeds/jobs-ingest/internal/source"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var idGen jobs.IDGenerator
	switch cfg.Extract.Identity {
	case config.IdentityNatural:
		idGen = uuid.NewNaturalKeyGenerator(cfg.Source.Name)
	default:
		idGen = uuid.NewRandomGenerator()
	}
	extractor := extract.New(idGen, logger.Named("extract"))

	sinks := connectSinks(ctx, cfg, logger)
	if len(sinks) == 0 {
		logger.Error("no sinks available, aborting run")
		os.Exit(1)
	}
	coordinator := pipeline.NewCoordinator(sinks, logger.Named("persist"))

	feed := source.NewFeed(cfg.Source.Paths, logger.Named("source"))
	runner := pipeline.NewRunner(feed, extractor, coordinator, logger.Named("pipeline"))

	apiServer := api.NewServer(runner, logger.Named("api"))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("ingestion run failed", zap.Error(err))
	}
	stop()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	if err := coordinator.Close(shutdownCtx); err != nil {
		logger.Error("sink close error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

// connectSinks dials each configured sink with bounded retries. Sinks
// that fail to connect are left out and ingestion continues degraded on
// the remainder.
func connectSinks(ctx context.Context, cfg config.Config, logger *zap.Logger) []jobs.Sink {
	attempts := cfg.Connect.Attempts
	delay := cfg.ConnectDelay()

	var sinks []jobs.Sink
	if sink := pipeline.Connect(ctx, "postgres", attempts, delay,
		func(ctx context.Context) (jobs.Sink, error) {
			s, err := pgsink.New(ctx, pgsink.Config{
				DSN:      cfg.DB.DSN,
				MaxConns: cfg.DB.MaxConns,
				MinConns: cfg.DB.MinConns,
			}, logger.Named("postgres"))
			if err != nil {
				return nil, err
			}
			return s, nil
		}, logger); sink != nil {
		sinks = append(sinks, sink)
	}

	if sink := pipeline.Connect(ctx, "redis", attempts, delay,
		func(ctx context.Context) (jobs.Sink, error) {
			s, err := redissink.New(ctx, redissink.Config{
				Addr:     cfg.Cache.Addr,
				Password: cfg.Cache.Password,
				DB:       cfg.Cache.DB,
			}, logger.Named("redis"))
			if err != nil {
				return nil, err
			}
			return s, nil
		}, logger); sink != nil {
		sinks = append(sinks, sink)
	}

	if sink := pipeline.Connect(ctx, "mongo", attempts, delay,
		func(ctx context.Context) (jobs.Sink, error) {
			s, err := mongosink.New(ctx, mongosink.Config{
				URI:        cfg.Documents.URI,
				Database:   cfg.Documents.Database,
				Collection: cfg.Documents.Collection,
			}, logger.Named("mongo"))
			if err != nil {
				return nil, err
			}
			return s, nil
		}, logger); sink != nil {
		sinks = append(sinks, sink)
	}
	return sinks
}
