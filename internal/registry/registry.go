// Package registry maps mode IDs to game factories. Modes register
// themselves from init, so the CLI and the TUI can list and create them
// without importing each one by name.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// Game is what the platform drives. Implementations hold pure game logic:
// no terminal, no Bubble Tea, no clocks of their own.
type Game interface {
	// ID is the stable key used on the command line and in score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh round for the given screen, frame rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one platform frame with the input collected during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame.
	Render(dst *core.Screen)

	State() core.GameState
}

// Recordable is implemented by games that write their final score to a
// high-score store when a round ends.
type Recordable interface {
	SetRecorder(r core.HighScoreRecorder)
}

// Describer is implemented by games with a one-line description.
type Describer interface {
	Description() string
}

// GameInfo is the metadata shown in lists and menus.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	byID    = make(map[string]int)
	entries []entry
)

// Register adds a mode. It panics on a duplicate ID.
func Register(id string, f Factory) {
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	mu.Lock()
	defer mu.Unlock()

	if _, dup := byID[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	byID[id] = len(entries)
	entries = append(entries, entry{info: info, factory: f})
}

// List returns every registered mode in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Create returns a new instance of the mode with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	i, ok := byID[id]
	var f Factory
	if ok {
		f = entries[i].factory
	}
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := byID[id]
	return ok
}
