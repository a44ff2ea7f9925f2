// Package registry provides a global registry for game engine factories.
// Game packages register themselves in init() functions, allowing the
// platform to discover and instantiate engines without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/chorequest/minigames/internal/config"
	"github.com/chorequest/minigames/internal/session"
)

// Factory builds a fresh engine under the given difficulty policy.
// Engines are stateful, so every session loop gets its own instance.
type Factory func(cfg config.Config) session.Engine

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an engine factory to the registry.
// Typically called from a game package's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Probe a throwaway instance for the display title.
	titles[id] = f(config.Defaults()).Title()
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

// Create instantiates a new engine by game ID under the given policy.
// Returns an error if the game ID is not registered.
func Create(id string, cfg config.Config) (session.Engine, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(cfg), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
