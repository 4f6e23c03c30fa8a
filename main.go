package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/gabrielsants/react-tetris/audio"
	"github.com/gabrielsants/react-tetris/logging"
	"github.com/gabrielsants/react-tetris/ui"
)

func main() {
	debug := flag.Bool("debug", false, "write a debug log to "+logging.DebugPath())
	flag.Parse()

	logger, closer, err := logging.NewClient(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "debug log unavailable:", err)
	}
	err = run(logger)
	_ = closer.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	logger.Debug("blockdrop start")
	env := ui.LoadEnv()

	var storage ui.Storage
	dir, err := ui.DefaultDir()
	if err != nil {
		logger.Warn("no config directory, settings will not persist", "err", err)
		storage = ui.NewMemoryStorage(ui.DefaultConfig())
	} else {
		storage = ui.NewFileStorage(dir)
	}
	config, err := storage.LoadConfig()
	if err != nil {
		logger.Warn("config load failed", "err", err)
	}

	player := audio.Open(audio.Options{
		Sound:     config.Sound,
		Music:     config.Music,
		Volume:    float64(config.Volume) / 100,
		MusicFile: env.MusicFile,
		Logger:    logger,
	})
	defer player.Close()

	model := ui.NewModel(ui.Options{
		Storage: storage,
		Audio:   player,
		Sync:    ui.NewScoreSyncFromEnv(env, config.Sync),
		Logger:  logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("program error", "err", err)
		return err
	}
	return nil
}
