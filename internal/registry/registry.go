// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/engine"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Cues plays sound effects. It may be nil in an Env.
type Cues interface {
	PlayScore()
	PlayCrash()
}

// Env is everything a host hands to a game when it starts.
type Env struct {
	Surface   engine.Surface
	Assets    engine.AssetLoader
	Scheduler engine.FrameScheduler
	Logger    *log.Logger
	Cues      Cues
	Runtime   core.RuntimeConfig
}

// Game is the interface between a host and a simulation.
// Hosts deliver frame pulses, key events and resizes; the game draws into
// the surface it was started with.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "lanerush").
	// Used for CLI commands and the menu.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Start discards any previous run and begins a new one.
	Start(env Env) error

	// Stop ends the run and releases its resources.
	Stop()

	// Frame delivers a frame pulse with a timestamp in milliseconds.
	// Hosts call it once per RequestFrame.
	Frame(ts float64)

	// KeyDown and KeyUp deliver key identifiers such as "w" or "r".
	KeyDown(key string)
	KeyUp(key string)

	// Resize changes the world size.
	Resize(w, h float64)

	// State returns the current game state (score, game over, running).
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error wrapping ErrUnknownGame if the ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
