package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/botpanel/botpanel/internal/activity"
	c "github.com/botpanel/botpanel/internal/cache"
	"github.com/botpanel/botpanel/internal/configuration"
	"github.com/botpanel/botpanel/internal/events"
	"github.com/botpanel/botpanel/internal/lifecycle"
	m "github.com/botpanel/botpanel/internal/middlewares"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/notifier"
	"github.com/botpanel/botpanel/internal/services"
	"github.com/botpanel/botpanel/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func StartWorkers(
	ctx context.Context,
	profile models.Profile,
	eventsManager *EventsManager,
	controller *lifecycle.Controller,
	db *gorm.DB,
	config models.Configuration,
	cache c.ICache,
	appIdentity string,
) {
	startWorker(ctx, profile.Workers.BotLifecycle, "bot_lifecycle", cache, appIdentity, func(ctx context.Context) {
		subscriber := eventsManager.GetSubscriber(configuration.EventsBotLifecycle)
		messages, err := subscriber.Subscribe(ctx)
		if err != nil {
			zap.L().Error("Failed to subscribe to lifecycle events", zap.Error(err))
			return
		}
		events.HandleEvents(ctx, &events.EventParams{Lifecycle: controller}, messages)
	})

	startWorker(ctx, profile.Workers.MetricsSampler, "metrics_sampler", cache, appIdentity, func(ctx context.Context) {
		worker := &workers.MetricsSampler{
			DB:          db,
			RunInterval: time.Duration(config.App.MetricsInterval) * time.Second,
		}
		worker.Start(ctx)
	})
}

func startWorker(
	ctx context.Context,
	mode models.WorkerMode,
	workerName string,
	cache c.ICache,
	appIdentity string,
	runWorker func(context.Context),
) {
	if mode == models.WorkerModeDisabled {
		return
	}

	if mode == models.WorkerModeSingleton && cache != nil {
		go startSingletonWorker(ctx, cache, appIdentity, workerName, runWorker)
		return
	}

	go runWorker(ctx)
	zap.L().Info("Started worker", zap.String("worker", workerName), zap.String("mode", string(mode)))
}

// startSingletonWorker runs the worker while this instance holds the cache lock.
func startSingletonWorker(
	ctx context.Context,
	cache c.ICache,
	instanceID string,
	workerName string,
	runWorker func(context.Context),
) {
	lockKey := fmt.Sprintf(configuration.CacheAppWorkerLockKey, workerName)
	ticker := time.NewTicker(time.Duration(configuration.CacheAppWorkerLockRefresh) * time.Second)
	defer ticker.Stop()

	var cancelWorker context.CancelFunc
	defer func() {
		if cancelWorker != nil {
			cancelWorker()
		}
	}()

	for {
		if cancelWorker == nil {
			acquired, err := cache.TryAcquireLock(lockKey, instanceID, configuration.CacheAppWorkerLockTTL)
			if err != nil {
				zap.L().Error("Failed to acquire worker lock", zap.String("worker", workerName), zap.Error(err))
			}

			if acquired {
				zap.L().Info("Acquired worker lock, starting worker", zap.String("worker", workerName))
				var workerCtx context.Context
				workerCtx, cancelWorker = context.WithCancel(ctx)
				go runWorker(workerCtx)
			}
		} else {
			refreshed, err := cache.RefreshLock(lockKey, instanceID, configuration.CacheAppWorkerLockTTL)
			if err != nil || !refreshed {
				zap.L().Warn("Lost worker lock, stopping worker", zap.String("worker", workerName))
				cancelWorker()
				cancelWorker = nil
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Dependencies groups what the HTTP services need.
type Dependencies struct {
	DB             *gorm.DB
	Cache          c.ICache
	Lifecycle      *lifecycle.Controller
	ActivityLogger activity.IActivityLogger
	Notifier       notifier.INotifier
	StartedAt      time.Time
}

// NewRouter builds the API router and, when enabled, the dashboard file server.
func NewRouter(config models.Configuration, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if config.Tracing.Enabled {
		r.Use(otelhttp.NewMiddleware(configuration.AppName))
	}
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(m.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))

	operatorEmail := config.Notifier.OperatorEmail

	conversations := services.ConversationService{DB: deps.DB, ActivityLogger: deps.ActivityLogger}
	payments := services.PaymentService{
		DB:             deps.DB,
		Payments:       config.Payments,
		ActivityLogger: deps.ActivityLogger,
		Notifier:       deps.Notifier,
		OperatorEmail:  operatorEmail,
	}
	system := services.SystemService{
		DB:             deps.DB,
		Lifecycle:      deps.Lifecycle,
		ActivityLogger: deps.ActivityLogger,
		Notifier:       deps.Notifier,
		OperatorEmail:  operatorEmail,
		StartedAt:      deps.StartedAt,
	}

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Use(m.RateLimit(deps.Cache, config.App.TrustedProxies, config.App.RateLimit))

		apiRouter.Mount("/dashboard", services.DashboardService{DB: deps.DB}.Routes())
		apiRouter.Mount("/orders", services.OrderService{DB: deps.DB, ActivityLogger: deps.ActivityLogger}.Routes())
		apiRouter.Mount("/conversations", conversations.Routes())
		apiRouter.Mount("/replies", conversations.ReplyRoutes())
		apiRouter.Mount("/system", system.Routes())
		apiRouter.Mount("/bot", system.BotRoutes())
		apiRouter.Mount("/webhook", system.WebhookRoutes())
		apiRouter.Mount("/xendit", payments.Routes())
		apiRouter.Mount("/transactions", payments.TransactionRoutes())
		apiRouter.Mount("/activity", services.ActivityService{ActivityLogger: deps.ActivityLogger}.Routes())
	})

	if config.App.StaticFiles.Enabled {
		r.Mount("/", services.StaticFileService{Directory: config.App.StaticFiles.Directory}.Routes())
		zap.L().Info("Static file service enabled", zap.String("directory", config.App.StaticFiles.Directory))
	} else {
		zap.L().Info("Static file service disabled")
	}

	return r
}

// StartHTTPServer serves until ctx is cancelled, then drains in-flight requests.
func StartHTTPServer(ctx context.Context, config models.Configuration, deps Dependencies) {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.App.Port),
		Handler:      NewRouter(config, deps),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Failed to shut down HTTP server", zap.Error(err))
		}
	}()

	zap.L().Info("HTTP server starting", zap.Int("port", config.App.Port))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Error("Failed to start the app", zap.Error(err))
	}
}
