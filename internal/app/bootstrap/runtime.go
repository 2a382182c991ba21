package bootstrap

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

	"gorm.io/gorm"

	"github.com/viralforge/publish-review-service/internal/adapters/cache"
	"github.com/viralforge/publish-review-service/internal/adapters/events"
	httpadapter "github.com/viralforge/publish-review-service/internal/adapters/http"
	"github.com/viralforge/publish-review-service/internal/adapters/platform"
	"github.com/viralforge/publish-review-service/internal/adapters/postgres"
	"github.com/viralforge/publish-review-service/internal/application"
	"github.com/viralforge/publish-review-service/internal/ports"
)

type Runtime struct {
	Config  Config
	Logger  *slog.Logger
	DB      *gorm.DB
	Service *application.Service
	Router  http.Handler

	closers []func() error
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", cfg.ServiceID)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	rt := &Runtime{Config: cfg, Logger: logger, DB: db}

	latestCache := rt.buildLatestCache(ctx)
	publisher := rt.buildEventPublisher()

	scriptPublisher := platform.NewScriptPublisher(logger, platform.Config{
		Interpreter:    cfg.PlatformInterpreter,
		UploadScript:   cfg.PlatformUploadScript,
		MetadataScript: cfg.PlatformMetadataScript,
		StagingDir:     cfg.StagingDir,
		CallTimeout:    cfg.PlatformTimeout(),
	})

	repos := postgres.NewRepositories(db)

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:    cfg.ServiceID,
			PublishTimeout: cfg.PlatformTimeout(),
			LatestCacheTTL: cfg.LatestCacheTTL(),
		},
		Submissions: repos.Submissions,
		Publisher:   scriptPublisher,
		Events:      publisher,
		Cache:       latestCache,
		Logger:      logger,
	})

	handler := httpadapter.NewHandler(service, httpadapter.StagingConfig{
		Dir:            cfg.StagingDir,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})

	rt.Service = service
	rt.Router = httpadapter.NewRouter(handler, logger)
	return rt, nil
}

func (rt *Runtime) buildLatestCache(ctx context.Context) ports.LatestCache {
	if rt.Config.RedisURL == "" {
		return cache.NewMemoryLatestCache()
	}
	client, err := cache.Connect(ctx, rt.Config.RedisURL)
	if err != nil {
		rt.Logger.Warn("redis unavailable, using in-process cache", "error", err)
		return cache.NewMemoryLatestCache()
	}
	rt.closers = append(rt.closers, client.Close)
	return cache.NewRedisLatestCache(client)
}

func (rt *Runtime) buildEventPublisher() ports.EventPublisher {
	if len(rt.Config.KafkaBrokers) == 0 {
		return events.NewLoggingPublisher(rt.Logger)
	}
	topic := rt.Config.KafkaTopicSubmissionEvents
	publisher, err := events.NewKafkaPublisher(rt.Config.KafkaBrokers, map[string]string{
		application.EventSubmissionPublished:     topic,
		application.EventSubmissionPublishFailed: topic,
		application.EventSubmissionApproved:      topic,
		application.EventSubmissionRejected:      topic,
	})
	if err != nil {
		rt.Logger.Warn("kafka unavailable, events will be logged only", "error", err)
		return events.NewLoggingPublisher(rt.Logger)
	}
	rt.closers = append(rt.closers, publisher.Close)
	return publisher
}

// RunAPI serves HTTP until the context is cancelled or a termination signal
// arrives, then drains in-flight requests and closes external connections.
func (rt *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", rt.Config.HTTPPort),
		Handler:           rt.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.Logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		rt.close()
		return err
	case <-ctx.Done():
	}

	rt.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	rt.close()
	return err
}

func (rt *Runtime) close() {
	for _, closeFn := range rt.closers {
		if err := closeFn(); err != nil {
			rt.Logger.Warn("close dependency", "error", err)
		}
	}
}
