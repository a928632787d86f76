package replay

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/split-horizon/internal/config"
	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/runner"
)

func scriptedInput(i int) core.InputFrame {
	in := core.NewInputFrame()
	if i%90 == 60 {
		in.Set(core.ActionFlip)
	}
	if i%40 < 8 {
		in.Hold(core.ActionLeft)
	}
	if i%70 < 5 {
		in.Hold(core.ActionRight)
	}
	return in
}

// record plays frames on a fresh game while recording them.
func record(t *testing.T, level string, frames int) (*runner.Game, Replay) {
	t.Helper()
	g, err := runner.Create(level, runner.WithConfig(config.DefaultRunnerConfig()))
	require.NoError(t, err)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 777})

	rec, err := NewRecorder(g)
	require.NoError(t, err)
	for i := 0; i < frames; i++ {
		in := scriptedInput(i)
		rec.Record(in)
		g.Step(in)
	}
	return g, rec.Replay()
}

func TestRecorderCapturesRun(t *testing.T) {
	_, r := record(t, "mirrored", 30)

	assert.Equal(t, Version, r.Version)
	assert.Equal(t, "mirrored", r.Level)
	assert.Equal(t, int64(777), r.Seed)
	assert.Equal(t, 60, r.FPS)
	assert.Len(t, r.Frames, 30)
	assert.NotEmpty(t, r.ID)
	assert.NotEmpty(t, r.Config)
	assert.Equal(t, []core.Action{core.ActionLeft}, r.Frames[0].Held)
	assert.Empty(t, r.Frames[0].Pressed)
}

func TestPlaybackReproducesSnapshot(t *testing.T) {
	for _, level := range []string{"ground", "mirrored", "classic"} {
		t.Run(level, func(t *testing.T) {
			g, r := record(t, level, 600)
			want := g.Snapshot()

			got, err := Play(r)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestEncodeDecodeFile(t *testing.T) {
	g, r := record(t, "ceiling", 300)
	path := filepath.Join(t.TempDir(), "run.hzr")

	require.NoError(t, Save(path, r))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, r.ID, loaded.ID)
	assert.Equal(t, r.Frames, loaded.Frames)
	assert.True(t, r.RecordedAt.Equal(loaded.RecordedAt))

	got, err := Play(loaded)
	require.NoError(t, err)
	assert.Equal(t, g.Snapshot(), got)
}

func TestDecodeRejectsOtherVersion(t *testing.T) {
	_, r := record(t, "ground", 1)
	r.Version = Version + 1

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, r))
	_, err := Decode(&buf)
	assert.True(t, errors.Is(err, ErrVersion))
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0xff, 0x00, 0x13}))
	assert.Error(t, err)
}

func TestFrameEncodesAsArray(t *testing.T) {
	data, err := cbor.Marshal(Frame{Pressed: []core.Action{core.ActionFlip}})
	require.NoError(t, err)
	// 0x82: array of two items
	assert.Equal(t, byte(0x82), data[0])
}

func TestPlayUnknownLevel(t *testing.T) {
	_, r := record(t, "ground", 1)
	r.Level = "nowhere"
	_, err := Play(r)
	assert.Error(t, err)
}

func TestReplayDuration(t *testing.T) {
	_, r := record(t, "ground", 120)
	assert.InDelta(t, 2.0, r.Duration().Seconds(), 1e-6)
}
