package tui

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/split-horizon/internal/runner"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsRecordSessions(t *testing.T) {
	m := NewMetrics()
	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()

	out := scrape(t, m)
	assert.Contains(t, out, "horizon_sessions_active 1")
	assert.Contains(t, out, "horizon_sessions_total 2")
}

func TestMetricsRecordRuns(t *testing.T) {
	m := NewMetrics()
	m.ObserveRun(runner.Stats{Level: "ground", Distance: 42, Sections: 3})
	m.ObserveRun(runner.Stats{Level: "ground", Distance: 400, Sections: 9, Complete: true})

	out := scrape(t, m)
	assert.Contains(t, out, `horizon_runs_total{level="ground",outcome="crashed"} 1`)
	assert.Contains(t, out, `horizon_runs_total{level="ground",outcome="completed"} 1`)
	assert.Contains(t, out, "horizon_sections_emitted_total 12")
	assert.Contains(t, out, "horizon_run_distance_count 2")
}

func TestMetricsNilIsNoop(t *testing.T) {
	var m *Metrics
	m.SessionStarted()
	m.SessionEnded()
	m.ObserveRun(runner.Stats{Level: "ground"})
}
