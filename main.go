package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/college-vote/cliparse"
	"github.com/danielhkuo/college-vote/db"
	"github.com/danielhkuo/college-vote/election"
	"github.com/danielhkuo/college-vote/middleware"
	"github.com/danielhkuo/college-vote/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect and verify
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := election.NewService(dbConn)

	// Seed the admin account
	if cfg.AdminPassword != "" {
		created, err := svc.EnsureAdmin(ctx, cfg.AdminCollegeID, cfg.AdminPassword, "System Admin")
		if err != nil {
			slog.Error("admin seed failed", "error", err)
			os.Exit(1)
		}
		if !created {
			slog.Info("admin account already exists", "college_id", cfg.AdminCollegeID)
		}
	} else {
		slog.Warn("ADMIN_PASSWORD not set, no admin account seeded")
	}

	// Bring stored statuses up to date before serving
	if _, err := svc.Reconcile(ctx); err != nil {
		slog.Error("initial reconcile failed", "error", err)
		os.Exit(1)
	}

	reconcilerDone := make(chan struct{})
	if cfg.ReconcileSchedule != "" {
		go func() {
			defer close(reconcilerDone)
			if err := election.RunReconciler(ctx, svc, cfg.ReconcileSchedule); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("reconciler exited", "error", err)
			}
		}()
	} else {
		close(reconcilerDone)
	}

	// Create router
	mux := router.NewRouterWithService(svc, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	cancel()
	<-reconcilerDone
}
