package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypto-trade-journal/internal/api"
	"crypto-trade-journal/internal/calc"
	"crypto-trade-journal/internal/config"
	"crypto-trade-journal/internal/database"
	"crypto-trade-journal/internal/journal"
	"crypto-trade-journal/internal/logger"
	"crypto-trade-journal/internal/news"
	"crypto-trade-journal/internal/store"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to the database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	st := store.New(db)
	svc := journal.NewService(log,
		st,
		calc.NewCalculator(cfg.Journal.BreakEvenTolerance),
		calc.NewValidator(cfg.Journal.RiskPercents),
	)

	var headlines api.HeadlineSource
	if len(cfg.News.Sources) > 0 {
		headlines = news.NewScraper(cfg.News, log)
	}

	server := api.NewServer(log, cfg.Server, svc, st, headlines)

	errc := make(chan error, 1)
	go func() { errc <- server.Start() }()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			log.Fatal("Web server failed", zap.Error(err))
		}
	case <-sigchan:
		log.Info("Shutdown signal received, gracefully shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Web server stopped.")
}
