package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/split-horizon/internal/storage"
)

func seedRuns(t *testing.T, store *storage.Store) {
	t.Helper()
	runs := []storage.Run{
		{LevelID: "ground", Score: 1000, Distance: 1000, Completed: true, Flips: 12, Duration: 90 * time.Second, Seed: 7},
		{LevelID: "ground", Score: 250, Distance: 250, Flips: 3, Duration: 30 * time.Second},
		{LevelID: "ground", Score: 400, Distance: 400, Flips: 5, Duration: 45 * time.Second},
		{LevelID: "ceiling", Score: 90, Distance: 90},
	}
	for _, r := range runs {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}
}

func updateScores(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	require.True(t, ok)
	return sm
}

func TestScoreboardBrowsesLevels(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store)

	m := NewScoreboardModel(store, 100, 30)
	assert.Empty(t, m.runs, "classic has no runs")
	assert.Contains(t, m.View(), "no runs yet")

	m = updateScores(t, m, keyMsg("right"))
	require.Len(t, m.runs, 3)
	assert.Equal(t, 1000.0, m.runs[0].Distance, "furthest first")
	assert.Equal(t, 400.0, m.runs[1].Distance)
	assert.Contains(t, m.View(), "FURTHEST RUNS - Ground Run")
	assert.Contains(t, m.View(), "3 runs  1 cleared  20 flips")

	m = updateScores(t, m, keyMsg("left"))
	m = updateScores(t, m, keyMsg("left"))
	assert.Equal(t, "mirrored", m.levels[m.level].ID, "levels wrap around")
}

func TestScoreboardClearedFilter(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store)

	m := NewScoreboardModel(store, 100, 30)
	m = updateScores(t, m, keyMsg("tab"))
	m = updateScores(t, m, keyMsg("c"))

	require.Len(t, m.runs, 1)
	assert.True(t, m.runs[0].Completed)
	assert.Contains(t, m.View(), "(cleared)")

	m = updateScores(t, m, keyMsg("c"))
	assert.Len(t, m.runs, 3)
}

func TestScoreboardRecentView(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store)

	m := NewScoreboardModel(store, 100, 30)
	m = updateScores(t, m, keyMsg("tab"))
	m = updateScores(t, m, keyMsg("v"))

	require.Len(t, m.runs, 3, "recent runs are limited to the level")
	for _, r := range m.runs {
		assert.Equal(t, "ground", r.LevelID)
	}
	assert.Equal(t, 400.0, m.runs[0].Distance, "newest first")
	assert.Contains(t, m.View(), "RECENT RUNS - Ground Run")
}

func TestScoreboardRunDetail(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store)

	m := NewScoreboardModel(store, 100, 30)
	m.levelEnd = 1000
	m = updateScores(t, m, keyMsg("tab"))

	r, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 1.0, m.completion(r))
	detail := m.detail()
	assert.Contains(t, detail, "cleared at 1000.0")
	assert.Contains(t, detail, "12 flips (8.0/min)")
	assert.Contains(t, detail, "seed 7")

	m = updateScores(t, m, keyMsg("down"))
	r, ok = m.Selected()
	require.True(t, ok)
	assert.InDelta(t, 0.4, m.completion(r), 1e-9)
	assert.Contains(t, m.detail(), "40% of the level")
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "Select a run")

	m = updateScores(t, m, keyMsg("esc"))
	assert.True(t, m.IsGoingBack())
	assert.Empty(t, m.View())
}

func TestClockFormat(t *testing.T) {
	assert.Equal(t, "0:00", clock(0))
	assert.Equal(t, "1:30", clock(90*time.Second))
	assert.Equal(t, "10:05", clock(605*time.Second+400*time.Millisecond))
}
