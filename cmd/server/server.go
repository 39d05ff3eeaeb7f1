package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
)

// Run serves the HTTP API and processes tasks until ctx is canceled, a
// termination signal arrives, or the server fails. On the way out the HTTP
// server stops accepting requests first, then the task runner drains.
func (app *application) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", app.config.Server.Port, err)
	}
	return app.serve(ctx, listener)
}

func (app *application) serve(ctx context.Context, listener net.Listener) error {
	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				app.logger.Info("shutdown requested")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// HTTP server.
	{
		server := &http.Server{
			Handler:           app.router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g.Add(
			func() error {
				app.logger.Info("starting server", "addr", listener.Addr().String())
				if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			},
			func(_ error) {
				timeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
				shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					app.logger.Error("server shutdown failed", "error", err)
				}
			},
		)
	}

	// Task runner.
	{
		app.taskRunner.Start()
		stopped := make(chan struct{})
		g.Add(
			func() error {
				<-stopped
				return nil
			},
			func(_ error) {
				defer close(stopped)
				timeout := time.Duration(app.config.Task.ShutdownTimeoutSeconds) * time.Second
				stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				if err := app.taskRunner.Stop(stopCtx); err != nil {
					app.logger.Error("task runner did not drain in time", "error", err)
				}
			},
		)
	}

	err := g.Run()
	app.logger.Info("server shutdown completed")
	return err
}
