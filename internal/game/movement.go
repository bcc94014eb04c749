package game

import (
	"strings"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Direction is one of the four discrete moves.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection accepts "up", "down", "left", "right" and the browser
// key names "ArrowUp" etc., case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.TrimPrefix(strings.ToLower(s), "arrow") {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// DirectionFromAction maps a directional input action to a Direction.
func DirectionFromAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return 0, false
}

// Arena holds the logical play area and movement parameters.
type Arena struct {
	Width      float64
	Height     float64
	PlayerSize float64
	BaseSpeed  float64
	MinSpeed   float64
}

// DefaultArena returns the 800×600 arena with a 50-unit player.
func DefaultArena() Arena {
	return Arena{
		Width:      core.DesignWidth,
		Height:     core.DesignHeight,
		PlayerSize: 50,
		BaseSpeed:  core.BaseSpeed,
		MinSpeed:   core.MinSpeed,
	}
}

// Speed returns the rendered step length at the given scale.
func (a Arena) Speed(scale float64) float64 {
	return core.Speed(scale, a.BaseSpeed, a.MinSpeed)
}

// PlayerBox returns the rendered player box at pos.
func (a Arena) PlayerBox(pos core.Point, scale float64) core.Rect {
	return core.Square(pos, a.PlayerSize*scale)
}

// Move computes the player's next rendered position.
// The candidate is one step along dir, clamped to the scaled arena. If the
// clamped box overlaps any obstacle the move is rejected and pos is
// returned unchanged.
func Move(dir Direction, pos core.Point, scale float64, arena Arena, obstacles []core.Rect) core.Point {
	step := arena.Speed(scale)

	next := pos
	switch dir {
	case DirUp:
		next.Y -= step
	case DirDown:
		next.Y += step
	case DirLeft:
		next.X -= step
	case DirRight:
		next.X += step
	default:
		return pos
	}

	size := arena.PlayerSize * scale
	next.X = core.ClampF(next.X, 0, arena.Width*scale-size)
	next.Y = core.ClampF(next.Y, 0, arena.Height*scale-size)

	if CollidesWithAny(arena.PlayerBox(next, scale), obstacles) {
		return pos
	}
	return next
}
