package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const (
	appDirName       = "blockdrop"
	localScoresLimit = 10
)

type Config struct {
	Theme  string `json:"theme"`
	Sound  bool   `json:"sound"`
	Music  bool   `json:"music"`
	Volume int    `json:"volume"`
	Shadow bool   `json:"shadow"`
	Bag    bool   `json:"bag"`
	Scale  int    `json:"scale"`
	Sync   bool   `json:"sync"`
}

func DefaultConfig() Config {
	return Config{
		Theme:  themes[0].Name,
		Sound:  true,
		Music:  false,
		Volume: 70,
		Shadow: true,
		Scale:  1,
		Sync:   true,
	}
}

func (c Config) normalized() Config {
	if themeIndexByName(c.Theme) < 0 {
		c.Theme = themes[0].Name
	}
	c.Scale = clampScale(c.Scale)
	c.Volume = clampVolumePercent(c.Volume)
	return c
}

// ScoreEntry is a row on the scores screen, local or fetched.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Lines int    `json:"lines"`
	Level int    `json:"level"`
	When  string `json:"when"`
}

// Storage persists client settings and the offline score table.
type Storage interface {
	LoadConfig() (Config, error)
	SaveConfig(Config) error
	LoadScores() ([]ScoreEntry, error)
	SaveScores([]ScoreEntry) error
}

// FileStorage keeps config.json and scores.json in one directory.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// DefaultDir is the per-user config directory for the client.
func DefaultDir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appDirName), nil
}

func (s *FileStorage) LoadConfig() (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(filepath.Join(s.dir, "config.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	return config.normalized(), nil
}

func (s *FileStorage) SaveConfig(config Config) error {
	return s.write("config.json", config)
}

func (s *FileStorage) LoadScores() ([]ScoreEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, "scores.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return []ScoreEntry{}, nil
	}
	if err != nil {
		return []ScoreEntry{}, err
	}
	var entries []ScoreEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []ScoreEntry{}, fmt.Errorf("parse scores: %w", err)
	}
	return entries, nil
}

func (s *FileStorage) SaveScores(entries []ScoreEntry) error {
	return s.write("scores.json", entries)
}

func (s *FileStorage) write(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}

// MemoryStorage keeps everything for the lifetime of one session.
type MemoryStorage struct {
	mu     sync.Mutex
	config Config
	scores []ScoreEntry
}

func NewMemoryStorage(config Config) *MemoryStorage {
	return &MemoryStorage{config: config.normalized()}
}

func (s *MemoryStorage) LoadConfig() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config, nil
}

func (s *MemoryStorage) SaveConfig(config Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
	return nil
}

func (s *MemoryStorage) LoadScores() ([]ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ScoreEntry{}, s.scores...), nil
}

func (s *MemoryStorage) SaveScores(entries []ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append([]ScoreEntry{}, entries...)
	return nil
}

// insertScore adds entry and keeps the best ten, newest first on ties.
func insertScore(entries []ScoreEntry, entry ScoreEntry) []ScoreEntry {
	entries = append(entries, entry)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score == entries[j].Score {
			return entries[i].When > entries[j].When
		}
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > localScoresLimit {
		return entries[:localScoresLimit]
	}
	return entries
}
