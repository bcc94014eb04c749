package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader reads level files from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Levels are sorted by their order field, then by ID.
// Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	var parsed []parsedLevel

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		p, err := l.loadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		parsed = append(parsed, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		if parsed[i].Order != parsed[j].Order {
			return parsed[i].Order < parsed[j].Order
		}
		return parsed[i].ID < parsed[j].ID
	})

	out := make([]Level, len(parsed))
	for i, p := range parsed {
		out[i] = p.Level
	}
	return out, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	p, err := l.loadFile(path)
	if err != nil {
		return Level{}, err
	}
	return p.Level, nil
}

func (l *Loader) loadFile(path string) (parsedLevel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parsedLevel{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	p, err := parseYAML(data)
	if err != nil {
		return parsedLevel{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

// Catalog loads every level under Root into a catalog with the given ID.
// An empty directory is an error.
func (l *Loader) Catalog(id, title string) (*Catalog, error) {
	lvls, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("levels: no level files in %s", l.Root)
	}
	return NewCatalog(id, title, lvls), nil
}

func isSupportedExtension(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
