package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"

	"github.com/courtreign/courtreign/internal/config"
	"github.com/courtreign/courtreign/internal/database"
	server "github.com/courtreign/courtreign/internal/http"
	"github.com/courtreign/courtreign/internal/invitations"
	"github.com/courtreign/courtreign/internal/matches"
	"github.com/courtreign/courtreign/internal/metrics"
	"github.com/courtreign/courtreign/internal/notifier/slack"
	"github.com/courtreign/courtreign/internal/oracle"
	"github.com/courtreign/courtreign/internal/presence"
	"github.com/courtreign/courtreign/internal/pubsub"
	"github.com/courtreign/courtreign/internal/ranking"
	"github.com/courtreign/courtreign/internal/refdata"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ref := refdata.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	pubsubClient := pubsub.New(cfg.ProjectID)
	oracleClient := oracle.NewClient(cfg.Oracle.BaseURL, cfg.Oracle.APIKey)

	matchStore := matches.NewStore(db)
	lifecycle := matches.NewLifecycle(matchStore, oracleClient, pubsubClient, metricsSvc, cfg.Oracle.MaxAttempts)
	invitationSvc := invitations.NewService(db, ref, matchStore)
	rankingEngine := ranking.NewEngine(db, ref)
	presenceTracker := presence.NewTracker(db, ref)

	s := server.NewServer(
		invitationSvc,
		lifecycle,
		rankingEngine,
		presenceTracker,
		ref,
		metricsSvc,
		metricsHandler,
		notifier,
		cfg,
		pubsubClient,
	)

	// --- Stale presence sweep ---
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %s", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			if _, err := presenceTracker.DeleteStale(); err != nil {
				log.Error("Stale presence sweep failed", "error", err)
			}
		}),
	)
	if err != nil {
		log.Fatalf("Failed to schedule presence sweep: %s", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Error("Scheduler shutdown failed", "error", err)
		}
	}()

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
