package audio

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/taliesin/internal/config"
)

// Manager owns the player and the file watcher for the configured sound.
type Manager struct {
	logger  *slog.Logger
	player  *Player
	watcher *Watcher
	file    string
}

// NewManager creates a manager for cfg.File at cfg.Volume. A watcher that
// cannot be created is logged and skipped; playback still works.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	player := NewPlayer(logger)
	player.SetVolume(cfg.Volume)

	m := &Manager{
		logger: logger,
		player: player,
		file:   cfg.File,
	}

	watcher, err := NewWatcher(player, logger)
	if err != nil {
		logger.Warn("sound file watcher unavailable", "error", err)
	} else {
		m.watcher = watcher
	}

	return m
}

// Start preloads the sound and starts watching it. Neither step is fatal:
// a missing or broken file is reported when playback is attempted.
func (m *Manager) Start() {
	if err := m.player.Preload(m.file); err != nil {
		m.logger.Warn("failed to preload sound", "path", m.file, "error", err)
	}

	if m.watcher == nil {
		return
	}
	if err := m.watcher.Watch(m.file); err != nil {
		m.logger.Warn("failed to watch sound file", "path", m.file, "error", err)
		return
	}
	m.watcher.Start()

	m.logger.Info("audio manager started", "file", m.file, "volume", m.player.Volume())
}

// Play plays path to completion.
func (m *Manager) Play(ctx context.Context, path string) error {
	return m.player.Play(ctx, path)
}

// Stop shuts down the audio manager.
func (m *Manager) Stop() {
	if m.watcher != nil {
		if err := m.watcher.Stop(); err != nil {
			m.logger.Debug("failed to close audio watcher", "error", err)
		}
	}
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}
