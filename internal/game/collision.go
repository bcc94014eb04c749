// Package game implements the maze engine: movement, collision, win
// detection, scoring and the level lifecycle of a single play session.
package game

import "github.com/vovakirdan/tui-maze/internal/core"

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func Overlaps(a, b core.Rect) bool {
	return a.Intersects(b)
}

// CollidesWithAny reports whether player overlaps at least one obstacle.
func CollidesWithAny(player core.Rect, obstacles []core.Rect) bool {
	for _, o := range obstacles {
		if Overlaps(player, o) {
			return true
		}
	}
	return false
}
