package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	server "growth-dashboard"
	"growth-dashboard/internal/logger"
	"growth-dashboard/internal/manager"
	"growth-dashboard/internal/models"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	planPath := flag.String("plan", "", "Plan file (.json or .yaml); built-in plan when empty")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debug {
		logger.SetLevel(logger.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	weeks := models.DefaultPlan()
	if *planPath != "" {
		loaded, err := models.LoadPlan(*planPath)
		if err != nil {
			logger.Error(ctx, err, "loading plan")
			os.Exit(1)
		}
		weeks = loaded
		logger.Info(ctx, "plan loaded", "path", *planPath, "weeks", len(weeks))
	}

	bm := manager.NewBoardManager(weeks)

	srv := &http.Server{
		Addr:    *addr,
		Handler: server.NewRouter(bm),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), err, "shutting down")
		}
	}()

	logger.Info(ctx, "dashboard listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, err, "server failed")
		os.Exit(1)
	}
}
