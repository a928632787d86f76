// Package session holds the per-run game state around the core simulation:
// level completion, the slow-motion end of run, fades between levels, cheat
// codes and the score readout.
package session

import (
	"io"

	"github.com/charmbracelet/log"
)

// Loader loads a level by index. The manager calls it after a fade-out.
type Loader interface {
	LoadLevel(index int)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(index int)

// LoadLevel calls f(index).
func (f LoaderFunc) LoadLevel(index int) { f(index) }

// Config holds timing for the end-of-run sequence.
type Config struct {
	SlowMoScale    float64 // time scale while the run ends
	SlowMoDuration float64 // real seconds before the reload fade starts
	FadeDuration   float64 // real seconds per fade
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		SlowMoScale:    0.01,
		SlowMoDuration: 2,
		FadeDuration:   1,
	}
}

// Manager is the game-state collaborator for one level run.
// CompleteLevel and TriggerSlowMoAndEndGame each take effect at most once.
type Manager struct {
	cfg    Config
	level  int
	loader Loader
	logger *log.Logger
	fade   *Fade

	complete   bool
	ended      bool
	timeScale  float64
	slowMoLeft float64
}

// NewManager starts a run of level index with a fade-in.
func NewManager(cfg Config, level int, loader Loader, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if loader == nil {
		loader = LoaderFunc(func(int) {})
	}
	m := &Manager{
		cfg:       cfg,
		level:     level,
		loader:    loader,
		logger:    logger,
		fade:      NewFade(cfg.FadeDuration),
		timeScale: 1,
	}
	m.fade.In(LevelTitle(level))
	return m
}

// Level returns the current level index.
func (m *Manager) Level() int { return m.level }

// Fade returns the screen fade.
func (m *Manager) Fade() *Fade { return m.fade }

// TimeScale returns the simulation time multiplier.
func (m *Manager) TimeScale() float64 { return m.timeScale }

// IsLevelComplete reports whether the level was won.
func (m *Manager) IsLevelComplete() bool { return m.complete }

// GameOver reports whether the run has ended in failure.
func (m *Manager) GameOver() bool { return m.ended }

// CompleteLevel marks the level won.
func (m *Manager) CompleteLevel() {
	if m.complete || m.ended {
		return
	}
	m.complete = true
	m.logger.Info("level won", "level", m.level)
}

// TriggerSlowMoAndEndGame slows time to a crawl, then fades out and reloads
// the current level. Repeated calls are ignored.
func (m *Manager) TriggerSlowMoAndEndGame() {
	if m.ended {
		return
	}
	m.ended = true
	m.timeScale = m.cfg.SlowMoScale
	m.slowMoLeft = m.cfg.SlowMoDuration
	m.logger.Info("game over", "level", m.level)
}

// LoadNextLevel fades out and loads the following level. It only works once
// the level is complete and no fade-out is already running.
func (m *Manager) LoadNextLevel() bool {
	if !m.complete || m.fade.Dir == FadeOut {
		return false
	}
	next := m.level + 1
	m.fade.Out(LevelTitle(next), func() { m.loader.LoadLevel(next) })
	return true
}

// Update advances real-time timers: the slow-motion hold and the fade.
func (m *Manager) Update(realDt float64) {
	if m.ended && m.slowMoLeft > 0 {
		m.slowMoLeft -= realDt
		if m.slowMoLeft <= 0 {
			m.slowMoLeft = 0
			m.timeScale = 1
			m.logger.Debug("reloading level", "level", m.level)
			level := m.level
			m.fade.Out(LevelTitle(level), func() { m.loader.LoadLevel(level) })
		}
	}
	m.fade.Update(realDt)
}
