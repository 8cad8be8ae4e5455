// Package app runs the HTTP server and the maintenance scheduler together and
// stops both when the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Runner is a component that blocks until ctx is cancelled or it fails.
type Runner interface {
	Run(ctx context.Context) error
}

// TaskScheduler is started once and stopped on shutdown.
type TaskScheduler interface {
	Start() error
	Stop() error
}

// App manages the lifecycle of the service components.
type App struct {
	logger    *slog.Logger
	server    Runner
	scheduler TaskScheduler
}

// New creates an App. scheduler may be nil.
func New(logger *slog.Logger, server Runner, scheduler TaskScheduler) *App {
	return &App{
		logger:    logger.With("component", "app"),
		server:    server,
		scheduler: scheduler,
	}
}

// Run starts every component and blocks until ctx is cancelled or one of them
// fails, in which case the others are stopped too.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting application...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.Run(gCtx)
	})

	if a.scheduler != nil {
		g.Go(func() error {
			if err := a.scheduler.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			<-gCtx.Done()
			a.logger.Info("Shutdown signal received, stopping scheduler...")

			if err := a.scheduler.Stop(); err != nil {
				a.logger.Error("Error stopping scheduler", "error", err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Application stopped due to error", "error", err)
		return err
	}

	a.logger.Info("Application stopped gracefully.")
	return nil
}
