package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gabrielsants/react-tetris/logging"
	"github.com/gabrielsants/react-tetris/scores"
)

func main() {
	logger := logging.NewServer("scores")
	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}
	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", "err", err)
	}
}

func run(cfg config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store scores.Store
	if cfg.dbPath == "" {
		logger.Info("Using in-memory store")
		store = scores.NewMemoryStore()
	} else {
		sqlite, err := scores.OpenSQLite(ctx, cfg.dbPath)
		if err != nil {
			return err
		}
		defer sqlite.Close()
		logger.Info("Using SQLite store", "path", cfg.dbPath)
		store = sqlite
	}

	handler := scores.NewHandler(store, scores.HandlerOptions{
		TopN:   cfg.topN,
		APIKey: cfg.apiKey,
		Logger: logger,
	})
	server := scores.NewServer(cfg.addr, handler, logger)

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
