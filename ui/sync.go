package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gabrielsants/react-tetris/scores"
)

const syncTimeout = 5 * time.Second

type scoresLoadedMsg struct {
	scores []ScoreEntry
	err    error
}

type scoreUploadedMsg struct {
	entry ScoreEntry
	err   error
}

// ScoreSync wraps the score client with bubbletea commands. A nil
// *ScoreSync is valid and always disabled.
type ScoreSync struct {
	enabled bool
	client  *scores.Client
}

func NewScoreSync(client *scores.Client, enabled bool) *ScoreSync {
	if client == nil {
		return nil
	}
	return &ScoreSync{client: client, enabled: enabled}
}

// NewScoreSyncFromEnv returns nil when no server is configured.
func NewScoreSyncFromEnv(env Env, enabled bool) *ScoreSync {
	if !env.SyncConfigured() {
		return nil
	}
	return NewScoreSync(scores.NewClient(env.ScoreAPIURL, env.ScoreAPIKey), enabled)
}

func (s *ScoreSync) Enabled() bool {
	return s != nil && s.enabled
}

func (s *ScoreSync) SetEnabled(enabled bool) {
	if s != nil {
		s.enabled = enabled
	}
}

func (s *ScoreSync) FetchScoresCmd() tea.Cmd {
	return func() tea.Msg {
		if !s.Enabled() {
			return scoresLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		records, err := s.client.Top(ctx, localScoresLimit)
		if err != nil {
			return scoresLoadedMsg{err: err}
		}
		entries := make([]ScoreEntry, 0, len(records))
		for _, r := range records {
			entries = append(entries, ScoreEntry{
				Name:  r.PlayerName,
				Score: r.Score,
				Lines: r.Lines,
				Level: r.Level,
			})
		}
		return scoresLoadedMsg{scores: entries}
	}
}

func (s *ScoreSync) UploadScoreCmd(entry ScoreEntry) tea.Cmd {
	return func() tea.Msg {
		if !s.Enabled() {
			return scoreUploadedMsg{entry: entry}
		}
		sub, err := scores.NewSubmission(entry.Name, entry.Score, entry.Level, entry.Lines).Normalize()
		if err != nil {
			return scoreUploadedMsg{entry: entry, err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		_, err = s.client.Submit(ctx, sub)
		return scoreUploadedMsg{entry: entry, err: err}
	}
}
