package ui

import (
	"os"
	"strings"
)

// Set at build time with
// -ldflags "-X github.com/gabrielsants/react-tetris/ui.defaultScoreAPIURL=..."
var (
	defaultScoreAPIURL string
	defaultScoreAPIKey string
)

const (
	envScoreAPIURL = "BLOCKDROP_SCORE_API_URL"
	envScoreAPIKey = "BLOCKDROP_SCORE_API_KEY"
	envScoreSync   = "BLOCKDROP_SCORE_SYNC"
	envMusicFile   = "BLOCKDROP_MUSIC_FILE"
)

// Env is the client configuration taken from the environment.
type Env struct {
	ScoreAPIURL string
	ScoreAPIKey string
	// SyncAllowed is false only when BLOCKDROP_SCORE_SYNC is explicitly off.
	SyncAllowed bool
	MusicFile   string
}

func LoadEnv() Env {
	return envFrom(os.LookupEnv)
}

func envFrom(lookup func(string) (string, bool)) Env {
	get := func(key, fallback string) string {
		if value, ok := lookup(key); ok {
			return strings.TrimSpace(value)
		}
		return fallback
	}
	env := Env{
		ScoreAPIURL: get(envScoreAPIURL, defaultScoreAPIURL),
		ScoreAPIKey: get(envScoreAPIKey, defaultScoreAPIKey),
		SyncAllowed: true,
		MusicFile:   get(envMusicFile, ""),
	}
	switch strings.ToLower(get(envScoreSync, "")) {
	case "false", "0", "off", "no":
		env.SyncAllowed = false
	}
	return env
}

// SyncConfigured reports whether a score server is reachable in principle.
func (e Env) SyncConfigured() bool {
	return e.ScoreAPIURL != "" && e.SyncAllowed
}
