package game

import "github.com/vovakirdan/tui-maze/internal/core"

// WinTolerance is the logical distance under which the player counts as
// having reached the goal, on each axis.
const WinTolerance = 30

// HasWon reports whether the player's top-left corner is within
// 30*scale of the goal's top-left corner on both axes. Both comparisons
// are strict.
func HasWon(player, goal core.Point, scale float64) bool {
	return Within(player, goal, WinTolerance*scale)
}

// Within reports whether a and b are closer than tol on both axes.
func Within(a, b core.Point, tol float64) bool {
	return core.AbsF(a.X-b.X) < tol && core.AbsF(a.Y-b.Y) < tol
}
