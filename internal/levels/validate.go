package levels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Bounds describes the design area and player sprite a level is checked against.
type Bounds struct {
	Width      float64
	Height     float64
	PlayerSize float64
}

// DefaultBounds returns the 800×600 design area with a 50-unit player.
func DefaultBounds() Bounds {
	return Bounds{
		Width:      core.DesignWidth,
		Height:     core.DesignHeight,
		PlayerSize: 50,
	}
}

// ValidationError collects every problem found in a level.
type ValidationError struct {
	LevelID  string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("level %q: %s", e.LevelID, strings.Join(e.Problems, "; "))
}

// Validate checks the authoring invariants of a level. The engine never
// calls it; it exists for pack authors and tests.
func Validate(l Level, b Bounds) error {
	var problems []string

	if l.ID == "" {
		problems = append(problems, "missing id")
	}

	for i, o := range l.Obstacles {
		if o.W <= 0 || o.H <= 0 {
			problems = append(problems, fmt.Sprintf("obstacle %d has non-positive size %vx%v", i, o.W, o.H))
		}
	}

	if !inside(l.PlayerStart, b) {
		problems = append(problems, fmt.Sprintf("start (%v,%v) outside arena", l.PlayerStart.X, l.PlayerStart.Y))
	}
	if !inside(l.Goal, b) {
		problems = append(problems, fmt.Sprintf("goal (%v,%v) outside arena", l.Goal.X, l.Goal.Y))
	}

	start := core.Square(l.PlayerStart, b.PlayerSize)
	for i, o := range l.Obstacles {
		if start.Intersects(o) {
			problems = append(problems, fmt.Sprintf("start overlaps obstacle %d", i))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{LevelID: l.ID, Problems: problems}
}

// ValidateCatalog validates every level in order and returns the first failure.
func ValidateCatalog(c *Catalog, b Bounds) error {
	for i := range c.Count() {
		l, _ := c.Level(i)
		if err := Validate(l, b); err != nil {
			return err
		}
	}
	return nil
}

// inside reports whether p's player box fits in the arena.
func inside(p core.Point, b Bounds) bool {
	return p.X >= 0 && p.Y >= 0 &&
		p.X <= b.Width-b.PlayerSize &&
		p.Y <= b.Height-b.PlayerSize
}
