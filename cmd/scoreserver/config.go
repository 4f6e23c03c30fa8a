package main

import (
	"flag"
	"fmt"
	"strconv"
)

type config struct {
	addr   string
	dbPath string
	topN   int
	apiKey string
}

// parseConfig reads flags, falling back to BLOCKDROP_* variables and then to
// built-in defaults.
func parseConfig(args []string, getenv func(string) string) (config, error) {
	cfg := config{
		addr:   envOr(getenv, "BLOCKDROP_ADDR", ":8080"),
		dbPath: envOr(getenv, "BLOCKDROP_DB", "scores.db"),
		topN:   10,
		apiKey: getenv("BLOCKDROP_API_KEY"),
	}
	if raw := getenv("BLOCKDROP_TOP_N"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("BLOCKDROP_TOP_N: %w", err)
		}
		cfg.topN = n
	}

	fs := flag.NewFlagSet("scoreserver", flag.ContinueOnError)
	fs.StringVar(&cfg.addr, "addr", cfg.addr, "listen address")
	fs.StringVar(&cfg.dbPath, "db", cfg.dbPath, "SQLite database path, empty for an in-memory store")
	fs.IntVar(&cfg.topN, "top", cfg.topN, "records returned by GET /api/scores")
	fs.StringVar(&cfg.apiKey, "api-key", cfg.apiKey, "require this X-Api-Key on submissions")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.topN < 1 || cfg.topN > 100 {
		return cfg, fmt.Errorf("top must be between 1 and 100, got %d", cfg.topN)
	}
	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
