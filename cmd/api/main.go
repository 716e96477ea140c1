package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/twoong-studio/portfolio-backend/config"
	"github.com/twoong-studio/portfolio-backend/internal/bootstrap"
	"github.com/twoong-studio/portfolio-backend/internal/logging"
	cronjob "github.com/twoong-studio/portfolio-backend/internal/portfolio/cron"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/service"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/texts"
)

const serviceName = "portfolio-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel, serviceName, cfg.App.Version)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher, err := newFetcher(ctx, cfg.Sheets, logger)
	if err != nil {
		return err
	}
	content := service.NewContentService(fetcher, logger.Named("content"))

	backing, err := newBacking(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backing.Close()

	hub := texts.NewHub()
	var notifier texts.Notifier = hub
	if backing.redis != nil {
		bridge := texts.NewRedisBridge(backing.redis, hub, logger.Named("texts-bridge"))
		notifier = bridge
		go func() {
			if err := bridge.Run(ctx, nil); err != nil && ctx.Err() == nil {
				logger.Error("site texts bridge stopped", zap.Error(err))
			}
		}()
	}
	editor := texts.NewEditor(backing.store, content.BaseTexts, notifier, logger.Named("texts"))

	bootstrap.SetGinMode(cfg.App.Environment)
	r, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   serviceName,
		Version:       cfg.App.Version,
		CORSOrigins:   cfg.Server.CORSOrigins,
		AdminPassword: cfg.Admin.Password,
		Checks:        backing.checks,
		Content:       content,
		Editor:        editor,
		Hub:           hub,
		Log:           logger,
	})
	if err != nil {
		return err
	}

	scheduler, err := cronjob.NewScheduler(cfg.Sheets.WarmCron, content, 2*cfg.Sheets.Timeout, logger.Named("cron"))
	if err != nil {
		return err
	}
	go scheduler.RunOnce()
	scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
