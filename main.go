package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinetrack/config"
	"cinetrack/handlers"
	"cinetrack/internal/database"
	"cinetrack/services/library"
	"cinetrack/services/omdb"
	"cinetrack/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFile)
	logger.Info("Starting cinetrack")

	db, err := database.NewDB(database.Config{DatabasePath: cfg.DatabaseFile})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.WithField("path", cfg.DatabaseFile).Info("Database initialized")

	omdbClient := omdb.NewClient(cfg.OMDBBaseURL, cfg.OMDBAPIKey)
	librarySvc := library.NewService(db.Library, omdbClient)

	router := utils.NewRouter(
		handlers.NewSearchHandler(omdbClient),
		handlers.NewLibraryHandler(librarySvc),
	)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()
	logger.WithField("port", cfg.ServerPort).Info("cinetrack is running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("cinetrack stopped")
	return nil
}
