package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/botpanel/botpanel/internal/configuration"
	"github.com/botpanel/botpanel/internal/core"
	"github.com/botpanel/botpanel/internal/database"
	"github.com/botpanel/botpanel/internal/lifecycle"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
	startedAt := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)
	defer func() { _ = zap.L().Sync() }()

	profile := configuration.GetProfile(config.App.Profile)

	shutdownTracing, err := core.InitTracing(ctx, config.Tracing)
	if err != nil {
		zap.L().Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			zap.L().Error("Failed to flush traces", zap.Error(err))
		}
	}()

	if profiler := core.StartProfiling(config.Profiling, profile.Name); profiler != nil {
		defer func() { _ = profiler.Stop() }()
	}

	db := database.InitDB(config.Database, profile.OwnsSchema)
	cache := core.NewCache(config.Cache)
	notify := core.NewNotifier(config.Notifier)
	activityLogger := core.NewActivityLogger(config.Activity)
	defer func() { _ = activityLogger.Close() }()

	var controller *lifecycle.Controller
	if profile.NeedsEvents() {
		eventsManager := core.NewEventsManager(config.Events)
		defer eventsManager.Close()

		controller = &lifecycle.Controller{
			DB:           db,
			Publisher:    eventsManager.GetPublisher(configuration.EventsBotLifecycle),
			RestartDelay: time.Duration(config.App.RestartDelay) * time.Second,
		}

		if profile.Workers.AnyEnabled() {
			appIdentity := uuid.New().String()
			if cache != nil {
				go cache.StartIdentityTicker(appIdentity)
				zap.L().Info("Cache identity ticker started")
			}
			core.StartWorkers(ctx, profile, eventsManager, controller, db, config, cache, appIdentity)
		}
	}

	if profile.HTTPServer {
		core.StartHTTPServer(ctx, config, core.Dependencies{
			DB:             db,
			Cache:          cache,
			Lifecycle:      controller,
			ActivityLogger: activityLogger,
			Notifier:       notify,
			StartedAt:      startedAt,
		})
	} else if profile.Workers.AnyEnabled() {
		zap.L().Info("Running in worker-only mode")
		<-ctx.Done()
	}

	if cache != nil {
		_ = cache.Close()
	}
}
