// Package registry provides a global registry of level packs.
// Packs register themselves in init() functions or at startup, allowing
// the hosts to discover and load catalogs without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-maze/internal/levels"
)

// ErrUnknownPack is returned by Create for an unregistered pack ID.
var ErrUnknownPack = errors.New("registry: unknown pack")

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh catalog for a pack.
type Factory func() (*levels.Catalog, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a pack factory to the registry.
// Panics if a pack with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// RegisterDir registers a pack backed by a directory of YAML level files.
// The directory is read each time the pack is created.
func RegisterDir(id, title, dir string) {
	Register(id, title, func() (*levels.Catalog, error) {
		return levels.NewLoader(dir).Catalog(id, title)
	})
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PackInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the catalog of the pack with the given ID.
func Create(id string) (*levels.Catalog, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPack, id)
	}

	c, err := f()
	if err != nil {
		return nil, fmt.Errorf("registry: loading pack %q: %w", id, err)
	}
	return c, nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

func init() {
	Register("classic", "Classic", func() (*levels.Catalog, error) {
		return levels.Classic(), nil
	})
}
