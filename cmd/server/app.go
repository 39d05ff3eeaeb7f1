package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/easybiz/easybiz-api/internal/api"
	"github.com/easybiz/easybiz-api/internal/config"
	"github.com/easybiz/easybiz-api/internal/events"
	"github.com/easybiz/easybiz-api/internal/metrics"
	"github.com/easybiz/easybiz-api/internal/pipeline"
	"github.com/easybiz/easybiz-api/internal/provider"
	"github.com/easybiz/easybiz-api/internal/service"
	"github.com/easybiz/easybiz-api/internal/service/auth"
	"github.com/easybiz/easybiz-api/internal/task"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	registry *prometheus.Registry
	recorder *metrics.Recorder

	eventEmitter *events.InMemoryEventEmitter
	taskStore    *task.MemoryStore
	taskRunner   *task.Runner
	gateway      *provider.Gateway

	jwtService     auth.JWTService
	contentService service.ContentService
}

// newApplication creates an application with all dependencies initialized.
// The task runner is created but not started; Run starts it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.recorder = metrics.NewRecorder(app.registry)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.LoggingHandler(logger))
	app.eventEmitter.RegisterHandler(app.recorder)

	var err error
	app.gateway, err = provider.NewFromConfig(ctx, cfg.Providers, logger,
		provider.WithObserver(app.recorder))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider gateway: %w", err)
	}

	app.taskStore = task.NewMemoryStore()
	app.taskRunner = task.NewRunner(app.taskStore, task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, app.eventEmitter, logger)

	app.contentService, err = service.NewContentService(
		app.taskStore,
		app.taskRunner,
		pipeline.NewRegistry(app.gateway, logger),
		app.gateway,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}

	if cfg.Auth.Enabled() {
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("bearer authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	} else {
		logger.Warn("auth.jwt_secret not set; generation endpoints are public")
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// router builds the HTTP handler of the application.
func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		ContentService: app.contentService,
		JWTService:     app.jwtService,
		Gatherer:       app.registry,
		Logger:         app.logger,
		ProjectName:    app.config.Server.ProjectName,
		Version:        app.config.Server.Version,
	})
}
