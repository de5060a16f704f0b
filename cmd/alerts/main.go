package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crypto-trade-journal/internal/alerts"
	"crypto-trade-journal/internal/config"
	"crypto-trade-journal/internal/database"
	"crypto-trade-journal/internal/logger"
	"crypto-trade-journal/internal/market"
	"crypto-trade-journal/internal/store"

	"go.uber.org/zap"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.")

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Initialize market client
	prices := market.NewClient(cfg.Market, log)
	if _, err := prices.ServerTime(ctx); err != nil {
		log.Fatal("Failed to connect to market API", zap.Error(err))
	}
	log.Info("Successfully connected to market API.")

	watcher := alerts.NewWatcher(log, store.New(db), prices, alerts.NotifierFor(cfg.Alerts, log), alerts.PollInterval(cfg.Alerts))
	watcher.Run(ctx)

	log.Info("Alert watcher has been shut down.")
}
