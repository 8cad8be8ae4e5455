package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/edgard/charsheet/internal/app"
	"github.com/edgard/charsheet/internal/config"
	"github.com/edgard/charsheet/internal/database"
	"github.com/edgard/charsheet/internal/logger"
	"github.com/edgard/charsheet/internal/relay"
	"github.com/edgard/charsheet/internal/scheduler"
	"github.com/edgard/charsheet/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	client, err := relay.NewClient(ctx, cfg.Relay, log)
	if err != nil {
		return fmt.Errorf("failed to initialize relay client: %w", err)
	}

	var history relay.HistoryRecorder
	if cfg.Relay.RecordHistory {
		history = store
	}
	relayService := relay.NewService(client, history, cfg.Relay.DefaultModel, log)

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg.HTTP, store, relayService, log)

	sched, err := scheduler.New(log, &cfg.Scheduler, scheduler.RegisterAllTasks(scheduler.TaskDeps{
		Logger: log,
		Store:  store,
	}))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	return app.New(log, srv, sched).Run(ctx)
}
