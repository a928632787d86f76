// Package replay records the seed and per-frame input of a run and plays it
// back deterministically. Replays are stored as CBOR.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/vovakirdan/split-horizon/internal/config"
	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/runner"
)

// Version is the replay format written by this package.
const Version = 1

// ErrVersion is returned when decoding a replay of another format version.
var ErrVersion = errors.New("replay: unsupported version")

// Frame is the input of one platform frame.
type Frame struct {
	_       struct{}      `cbor:",toarray"`
	Pressed []core.Action // key-down edges
	Held    []core.Action
}

// Input rebuilds the frame as passed to Step.
func (f Frame) Input() core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range f.Pressed {
		in.Set(a)
	}
	for _, a := range f.Held {
		in.Hold(a)
	}
	return in
}

func frameOf(in core.InputFrame) Frame {
	return Frame{Pressed: actions(in.Actions), Held: actions(in.Held)}
}

// actions flattens a set in a stable order.
func actions(set map[core.Action]bool) []core.Action {
	var out []core.Action
	for a, on := range set {
		if on {
			out = append(out, a)
		}
	}
	slices.Sort(out)
	return out
}

// Replay is a recorded run.
type Replay struct {
	Version    int       `cbor:"v"`
	ID         string    `cbor:"id"`
	Level      string    `cbor:"level"`
	Seed       int64     `cbor:"seed"`
	FPS        int       `cbor:"fps"`
	ScreenW    int       `cbor:"w"`
	ScreenH    int       `cbor:"h"`
	Config     []byte    `cbor:"config"` // runner config as YAML
	RecordedAt time.Time `cbor:"at"`
	Frames     []Frame   `cbor:"frames"`
}

// Runtime returns the runtime config the run was recorded with.
func (r Replay) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  r.ScreenW,
		ScreenH:  r.ScreenH,
		TickRate: r.FPS,
		Seed:     r.Seed,
	}
}

// Duration is the wall-clock length of the recording.
func (r Replay) Duration() time.Duration {
	return time.Duration(float64(len(r.Frames)) * r.Runtime().FrameDelta() * float64(time.Second))
}

// Recorder collects the frames fed to a game.
type Recorder struct {
	replay Replay
}

// NewRecorder starts a recording of g, which must have been Reset already.
func NewRecorder(g *runner.Game) (*Recorder, error) {
	data, err := config.Marshal(g.Config())
	if err != nil {
		return nil, fmt.Errorf("replay: cannot record config: %w", err)
	}
	rt := g.Runtime()
	return &Recorder{replay: Replay{
		Version:    Version,
		ID:         uuid.NewString(),
		Level:      g.StartID(),
		Seed:       rt.Seed,
		FPS:        rt.TickRate,
		ScreenW:    rt.ScreenW,
		ScreenH:    rt.ScreenH,
		Config:     data,
		RecordedAt: time.Now().UTC().Truncate(time.Second),
	}}, nil
}

// Record appends the input of one frame.
func (rec *Recorder) Record(in core.InputFrame) {
	rec.replay.Frames = append(rec.replay.Frames, frameOf(in))
}

// Len returns the number of recorded frames.
func (rec *Recorder) Len() int { return len(rec.replay.Frames) }

// Replay returns the recording so far.
func (rec *Recorder) Replay() Replay {
	r := rec.replay
	r.Frames = slices.Clone(rec.replay.Frames)
	return r
}

// Encode writes r as CBOR.
func Encode(w io.Writer, r Replay) error {
	if err := cbor.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("replay: cannot encode: %w", err)
	}
	return nil
}

// Decode reads a CBOR replay and checks its version.
func Decode(rd io.Reader) (Replay, error) {
	var r Replay
	if err := cbor.NewDecoder(rd).Decode(&r); err != nil {
		return Replay{}, fmt.Errorf("replay: cannot decode: %w", err)
	}
	if r.Version != Version {
		return Replay{}, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	return r, nil
}

// Save writes r to path.
func Save(path string, r Replay) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	if err := Encode(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a replay from path.
func Load(path string) (Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return Replay{}, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Play runs r headless and returns the final snapshot.
func Play(r Replay, opts ...runner.Option) (runner.Snapshot, error) {
	g, err := Prepare(r, opts...)
	if err != nil {
		return runner.Snapshot{}, err
	}
	for _, f := range r.Frames {
		g.Step(f.Input())
	}
	return g.Snapshot(), nil
}

// Prepare builds and resets the game r was recorded on, ready for its first frame.
func Prepare(r Replay, opts ...runner.Option) (*runner.Game, error) {
	cfg, err := config.Unmarshal(r.Config)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot load config: %w", err)
	}
	g, err := runner.Create(r.Level, append(opts, runner.WithConfig(cfg))...)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	g.Reset(r.Runtime())
	return g, nil
}
