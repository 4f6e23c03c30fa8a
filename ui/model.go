package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/gabrielsants/react-tetris/audio"
	"github.com/gabrielsants/react-tetris/scores"
	"github.com/gabrielsants/react-tetris/tetris"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenScores
	screenConfig
	screenNameEntry
)

const (
	warnSubmitFailed = "Failed to submit score. Press R to retry."
	warnOffline      = "Offline: scores not synced."
	warnSyncDisabled = "Score sync is disabled."
	defaultName      = "AAA"
)

// tickMsg carries the generation it was scheduled for. Starting, resetting,
// unpausing or leaving a game bumps the generation so older ticks are dropped.
type tickMsg struct {
	gen int
}

type Options struct {
	Storage Storage
	Audio   audio.Player
	Sync    *ScoreSync
	Logger  *log.Logger
	// Seed feeds the piece randomizer; zero seeds from the clock.
	Seed int64
}

type Model struct {
	screen      Screen
	width       int
	height      int
	menuIndex   int
	configIndex int
	themeIndex  int
	config      Config
	storage     Storage
	scores      []ScoreEntry
	game        *tetris.Game
	gen         int
	nameInput   textinput.Model
	help        help.Model
	audio       audio.Player
	sync        *ScoreSync
	syncWarning string
	syncLoading bool
	pending     *ScoreEntry
	lastDelta   int
	lastEvent   string
	lastEventAt time.Time
	seed        int64
	logger      *log.Logger
}

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	storage := opts.Storage
	if storage == nil {
		storage = NewMemoryStorage(DefaultConfig())
	}
	config, err := storage.LoadConfig()
	if err != nil {
		logger.Warn("config load failed, using defaults", "err", err)
	}
	config = config.normalized()
	player := opts.Audio
	if player == nil {
		player = audio.NewNop(config.Sound, config.Music, volumeFromPercent(config.Volume))
	}
	opts.Sync.SetEnabled(config.Sync)

	input := textinput.New()
	input.Placeholder = defaultName
	input.CharLimit = scores.MaxPlayerNameLength
	input.Prompt = ""

	m := Model{
		screen:     screenMenu,
		config:     config,
		storage:    storage,
		themeIndex: themeIndexByName(config.Theme),
		nameInput:  input,
		help:       help.New(),
		audio:      player,
		sync:       opts.Sync,
		seed:       opts.Seed,
		logger:     logger,
	}
	m.game = m.newGame()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) newGame() *tetris.Game {
	var rng tetris.Randomizer
	if m.config.Bag {
		rng = tetris.NewBag(m.seed)
	} else {
		rng = tetris.NewUniform(m.seed)
	}
	return tetris.New(tetris.DefaultConfig(), tetris.WithRandomizer(rng), tetris.WithSounder(m.audio))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		cmd := m.handleTick(msg)
		return m, cmd
	case scoresLoadedMsg:
		m.syncLoading = false
		if msg.err != nil {
			m.logger.Debug("scores fetch failed", "err", msg.err)
			m.syncWarning = warnOffline
			m.scores = m.loadLocalScores()
			return m, nil
		}
		if m.syncWarning == warnOffline {
			m.syncWarning = ""
		}
		m.scores = msg.scores
		return m, nil
	case scoreUploadedMsg:
		m.syncLoading = false
		if msg.err != nil {
			m.logger.Debug("score upload failed", "err", msg.err)
			entry := msg.entry
			m.pending = &entry
			m.syncWarning = warnSubmitFailed
			return m, nil
		}
		m.pending = nil
		m.syncWarning = ""
		m.syncLoading = true
		return m, m.sync.FetchScoresCmd()
	case tea.KeyMsg:
		if key.Matches(msg, menuKeys.Quit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			cmd := m.updateMenu(msg)
			return m, cmd
		case screenGame:
			cmd := m.updateGame(msg)
			return m, cmd
		case screenScores:
			cmd := m.updateScores(msg)
			return m, cmd
		case screenConfig:
			cmd := m.updateConfig(msg)
			return m, cmd
		case screenNameEntry:
			cmd := m.updateNameEntry(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenScores:
		return viewScores(m)
	case screenConfig:
		return viewConfig(m)
	case screenNameEntry:
		return viewNameEntry(m)
	default:
		return ""
	}
}

func tickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// rearm invalidates pending ticks and schedules a fresh one at the current
// level speed.
func (m *Model) rearm() tea.Cmd {
	m.gen++
	return tickCmd(m.gen, m.game.TickInterval())
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.gen || m.screen != screenGame {
		return nil
	}
	if m.game.State() != tetris.Running {
		return nil
	}
	result := m.game.Tick()
	if cmd := m.afterMove(result); cmd != nil {
		return cmd
	}
	return tickCmd(m.gen, m.game.TickInterval())
}

// afterMove records score feedback and switches to name entry when the game
// ended. It returns nil while the game continues.
func (m *Model) afterMove(result tetris.LockResult) tea.Cmd {
	if result.ScoreDelta > 0 {
		m.lastDelta = result.ScoreDelta
		m.lastEvent = "LINE CLEAR"
		if result.Cleared >= 4 {
			m.lastEvent = "TETRIS"
		}
		if result.LevelUp {
			m.lastEvent = "LEVEL UP"
		}
		m.lastEventAt = time.Now()
	}
	if m.game.Over() {
		return m.enterNameEntry()
	}
	return nil
}

func (m *Model) startGame() tea.Cmd {
	m.game = m.newGame()
	m.lastDelta = 0
	m.lastEvent = ""
	m.screen = screenGame
	return m.rearm()
}

func (m *Model) leaveGame() {
	m.gen++
	m.screen = screenMenu
}

func (m *Model) enterNameEntry() tea.Cmd {
	m.gen++
	m.screen = screenNameEntry
	m.nameInput.Reset()
	focus := m.nameInput.Focus()
	if m.sync.Enabled() {
		return tea.Batch(focus, m.sync.FetchScoresCmd())
	}
	m.scores = m.loadLocalScores()
	return focus
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, menuKeys.Up):
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case key.Matches(msg, menuKeys.Down):
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case key.Matches(msg, menuKeys.Select):
		switch m.menuIndex {
		case 0:
			return m.startGame()
		case 1:
			return m.openScores()
		case 2:
			m.screen = screenConfig
		case 3:
			return tea.Quit
		}
	case key.Matches(msg, menuKeys.Back):
		return tea.Quit
	}
	return nil
}

func (m *Model) openScores() tea.Cmd {
	m.screen = screenScores
	if m.sync.Enabled() {
		m.syncLoading = true
		if m.pending == nil {
			m.syncWarning = ""
		}
		return m.sync.FetchScoresCmd()
	}
	m.scores = m.loadLocalScores()
	if m.sync == nil {
		m.syncWarning = ""
	} else {
		m.syncWarning = warnSyncDisabled
	}
	return nil
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, gameKeys.Menu):
		m.leaveGame()
		return nil
	case key.Matches(msg, gameKeys.Restart):
		m.game.Reset()
		m.lastDelta = 0
		m.lastEvent = ""
		return m.rearm()
	case key.Matches(msg, gameKeys.Pause):
		if m.game.TogglePause() == tetris.Running {
			return m.rearm()
		}
		return nil
	}
	if m.game.State() != tetris.Running {
		return nil
	}
	switch {
	case key.Matches(msg, gameKeys.Left):
		m.game.MoveLeft()
	case key.Matches(msg, gameKeys.Right):
		m.game.MoveRight()
	case key.Matches(msg, gameKeys.Rotate):
		m.game.Rotate()
	case key.Matches(msg, gameKeys.Down):
		return m.afterMove(m.game.MoveDown())
	case key.Matches(msg, gameKeys.HardDrop):
		return m.afterMove(m.game.HardDrop())
	}
	return nil
}

func (m *Model) updateScores(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, menuKeys.Retry):
		if m.pending != nil && m.sync.Enabled() && !m.syncLoading {
			m.syncLoading = true
			m.syncWarning = ""
			return m.sync.UploadScoreCmd(*m.pending)
		}
	case key.Matches(msg, menuKeys.Back), key.Matches(msg, menuKeys.Select):
		m.screen = screenMenu
	}
	return nil
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, menuKeys.Up):
		if m.configIndex > 0 {
			m.configIndex--
		}
	case key.Matches(msg, menuKeys.Down):
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
		}
	case key.Matches(msg, menuKeys.Select):
		m.changeConfig(1, true)
	case key.Matches(msg, menuKeys.Left):
		m.changeConfig(-1, false)
	case key.Matches(msg, menuKeys.Right):
		m.changeConfig(1, false)
	case key.Matches(msg, menuKeys.Back):
		m.screen = screenMenu
	}
	return nil
}

// changeConfig applies one step to the selected item. Toggles only react to
// enter; ranged items react to both enter and the arrows.
func (m *Model) changeConfig(delta int, toggle bool) {
	switch configItems[m.configIndex] {
	case itemSound:
		if !toggle {
			return
		}
		m.config.Sound = m.audio.ToggleSound()
	case itemMusic:
		if !toggle {
			return
		}
		m.config.Music = m.audio.ToggleMusic()
	case itemVolume:
		m.config.Volume = clampVolumePercent(m.config.Volume + delta*5)
		m.audio.SetVolume(volumeFromPercent(m.config.Volume))
	case itemShadow:
		if !toggle {
			return
		}
		m.config.Shadow = !m.config.Shadow
	case itemRandomizer:
		if !toggle {
			return
		}
		m.config.Bag = !m.config.Bag
	case itemTheme:
		m.themeIndex = (m.themeIndex + delta + len(themes)) % len(themes)
		m.config.Theme = themes[m.themeIndex].Name
	case itemScale:
		next := m.config.Scale + delta
		if toggle && next > maxScale {
			next = 1
		}
		m.config.Scale = clampScale(next)
	case itemSync:
		if !toggle {
			return
		}
		m.config.Sync = !m.config.Sync
		m.sync.SetEnabled(m.config.Sync)
	}
	m.saveConfig()
}

func (m *Model) saveConfig() {
	if err := m.storage.SaveConfig(m.config); err != nil {
		m.logger.Warn("config save failed", "err", err)
	}
}

func (m *Model) updateNameEntry(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitScore()
	case tea.KeyEsc:
		m.nameInput.Blur()
		m.screen = screenMenu
		return nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return cmd
}

func (m *Model) submitScore() tea.Cmd {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		name = defaultName
	}
	m.nameInput.Blur()
	entry := ScoreEntry{
		Name:  name,
		Score: m.game.Score(),
		Lines: m.game.Lines(),
		Level: m.game.Level(),
		When:  time.Now().Format("2006-01-02 15:04"),
	}
	m.screen = screenScores
	if m.sync.Enabled() {
		m.syncLoading = true
		m.syncWarning = ""
		m.pending = &entry
		return m.sync.UploadScoreCmd(entry)
	}
	m.scores = insertScore(m.loadLocalScores(), entry)
	if err := m.storage.SaveScores(m.scores); err != nil {
		m.logger.Warn("scores save failed", "err", err)
	}
	return nil
}

func (m *Model) loadLocalScores() []ScoreEntry {
	entries, err := m.storage.LoadScores()
	if err != nil {
		m.logger.Warn("scores load failed", "err", err)
	}
	return entries
}

// standing returns the rank the current game would take in the listed
// scores and whether it beats the table.
func (m Model) standing() (int, bool) {
	records := make([]scores.Record, 0, len(m.scores))
	for _, entry := range m.scores {
		records = append(records, scores.Record{PlayerName: entry.Name, Score: entry.Score})
	}
	score := m.game.Score()
	return scores.Rank(records, score), scores.IsNewHighScore(records, score)
}

func volumeFromPercent(value int) float64 {
	return float64(clampVolumePercent(value)) / 100
}

const (
	itemSound      = "Sound Effects"
	itemMusic      = "Music"
	itemVolume     = "Volume"
	itemShadow     = "Shadow"
	itemRandomizer = "Randomizer"
	itemTheme      = "Theme"
	itemScale      = "Game Scale"
	itemSync       = "Score Sync"
)

var menuItems = []string{
	"Start Game",
	"Scores",
	"Config",
	"Quit",
}

var configItems = []string{
	itemSound,
	itemMusic,
	itemVolume,
	itemShadow,
	itemRandomizer,
	itemTheme,
	itemScale,
	itemSync,
}
