package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestEnvFrom(t *testing.T) {
	tests := []struct {
		name       string
		values     map[string]string
		wantURL    string
		wantSync   bool
		configured bool
	}{
		{
			name:     "empty",
			values:   map[string]string{},
			wantSync: true,
		},
		{
			name:       "url set",
			values:     map[string]string{envScoreAPIURL: " http://scores.local "},
			wantURL:    "http://scores.local",
			wantSync:   true,
			configured: true,
		},
		{
			name:     "sync off",
			values:   map[string]string{envScoreAPIURL: "http://scores.local", envScoreSync: "false"},
			wantURL:  "http://scores.local",
			wantSync: false,
		},
		{
			name:       "sync explicitly on",
			values:     map[string]string{envScoreAPIURL: "http://scores.local", envScoreSync: "TRUE"},
			wantURL:    "http://scores.local",
			wantSync:   true,
			configured: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := envFrom(lookupFrom(tt.values))
			assert.Equal(t, tt.wantURL, env.ScoreAPIURL)
			assert.Equal(t, tt.wantSync, env.SyncAllowed)
			assert.Equal(t, tt.configured, env.SyncConfigured())
		})
	}
}

func TestEnvBuildDefaults(t *testing.T) {
	prevURL, prevKey := defaultScoreAPIURL, defaultScoreAPIKey
	defaultScoreAPIURL, defaultScoreAPIKey = "http://built.in", "secret"
	t.Cleanup(func() { defaultScoreAPIURL, defaultScoreAPIKey = prevURL, prevKey })

	env := envFrom(lookupFrom(map[string]string{}))
	assert.Equal(t, "http://built.in", env.ScoreAPIURL)
	assert.Equal(t, "secret", env.ScoreAPIKey)

	env = envFrom(lookupFrom(map[string]string{envScoreAPIURL: "http://override"}))
	assert.Equal(t, "http://override", env.ScoreAPIURL)
}
