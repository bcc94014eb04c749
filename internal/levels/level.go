// Package levels defines maze layouts and the ordered catalogs they are
// played from.
package levels

import (
	"errors"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// ErrLevelNotFound is returned when a level lookup misses.
var ErrLevelNotFound = errors.New("levels: level not found")

// Level is one hand-authored maze in logical (800×600) coordinates.
type Level struct {
	ID          string
	Name        string
	Obstacles   []core.Rect
	Goal        core.Point
	PlayerStart core.Point
}

// Clone returns a copy that shares no memory with l.
func (l Level) Clone() Level {
	c := l
	c.Obstacles = make([]core.Rect, len(l.Obstacles))
	copy(c.Obstacles, l.Obstacles)
	return c
}

// Catalog is an immutable ordered sequence of levels, indexed from 0.
type Catalog struct {
	id     string
	title  string
	levels []Level
}

// NewCatalog builds a catalog from the given levels. The slice is copied.
func NewCatalog(id, title string, lvls []Level) *Catalog {
	c := &Catalog{
		id:     id,
		title:  title,
		levels: make([]Level, len(lvls)),
	}
	for i, l := range lvls {
		c.levels[i] = l.Clone()
	}
	return c
}

// ID returns the catalog identifier.
func (c *Catalog) ID() string { return c.id }

// Title returns the display name.
func (c *Catalog) Title() string { return c.title }

// Count returns the number of levels.
func (c *Catalog) Count() int {
	if c == nil {
		return 0
	}
	return len(c.levels)
}

// Level returns a copy of the level at index, or false if index is out of range.
func (c *Catalog) Level(index int) (Level, bool) {
	if c == nil || index < 0 || index >= len(c.levels) {
		return Level{}, false
	}
	return c.levels[index].Clone(), true
}

// ByID returns the level with the given ID.
func (c *Catalog) ByID(id string) (Level, error) {
	for _, l := range c.levels {
		if l.ID == id {
			return l.Clone(), nil
		}
	}
	return Level{}, ErrLevelNotFound
}

// Names returns the display names of all levels in order. Unnamed levels
// are listed by ID.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.levels))
	for i, l := range c.levels {
		names[i] = l.Name
		if names[i] == "" {
			names[i] = l.ID
		}
	}
	return names
}

// Classic returns the three built-in levels.
func Classic() *Catalog {
	return NewCatalog("classic", "Classic", []Level{
		// Level 1: two horizontal bars
		{
			ID:   "bars",
			Name: "Bars",
			Obstacles: []core.Rect{
				core.NewRect(200, 100, 400, 30),
				core.NewRect(200, 400, 400, 30),
			},
			Goal:        core.Pt(700, 500),
			PlayerStart: core.Pt(50, 50),
		},

		// Level 2: alternating pillars
		{
			ID:   "pillars",
			Name: "Pillars",
			Obstacles: []core.Rect{
				core.NewRect(100, 150, 30, 300),
				core.NewRect(300, 0, 30, 400),
				core.NewRect(500, 200, 30, 400),
				core.NewRect(650, 0, 30, 450),
			},
			Goal:        core.Pt(700, 500),
			PlayerStart: core.Pt(50, 50),
		},

		// Level 3: switchbacks
		{
			ID:   "switchback",
			Name: "Switchback",
			Obstacles: []core.Rect{
				core.NewRect(0, 150, 600, 30),
				core.NewRect(200, 300, 600, 30),
				core.NewRect(0, 450, 600, 30),
			},
			Goal:        core.Pt(700, 500),
			PlayerStart: core.Pt(50, 50),
		},
	})
}
