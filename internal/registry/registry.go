// Package registry provides a global registry for level factories.
// Levels register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/split-horizon/internal/core"
)

// Level is the interface every playable level variant implements.
// Levels contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Level interface {
	// ID returns a unique identifier for this level (e.g., "ground", "mirrored").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the level state.
	// Called once at start and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one platform frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current run state.
	State() core.GameState
}

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID    string
	Title string
	Order int
}

// Factory is a function that creates a new instance of a level.
type Factory func() Level

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	orders    = make(map[string]int)
	mu        sync.RWMutex
)

// Register adds a level factory to the registry.
// order positions the level in the campaign; lower comes first.
// Panics if a level with the same ID is already registered.
func Register(id string, order int, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", id))
	}

	factories[id] = f
	orders[id] = order

	// Get title by creating a temporary instance
	l := f()
	titles[id] = l.Title()
}

// List returns information about all registered levels in campaign order.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(factories))
	for id := range factories {
		result = append(result, LevelInfo{
			ID:    id,
			Title: titles[id],
			Order: orders[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new level by its ID.
// Returns an error if the level ID is not registered.
func Create(id string) (Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}

	return f(), nil
}

// At returns the ID of the level at campaign position i (0-based).
func At(i int) (string, bool) {
	levels := List()
	if i < 0 || i >= len(levels) {
		return "", false
	}
	return levels[i].ID, true
}

// IndexOf returns the campaign position of id, or -1 if it is not registered.
func IndexOf(id string) int {
	for i, info := range List() {
		if info.ID == id {
			return i
		}
	}
	return -1
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
