package core

import "math"

// Design space dimensions levels are authored in.
const (
	DesignWidth  = 800.0
	DesignHeight = 600.0
)

// Movement speed in logical units per step before scaling, and the floor
// applied after scaling.
const (
	BaseSpeed = 10.0
	MinSpeed  = 5.0
)

// ScaleFactor returns the uniform factor mapping design space onto a
// viewport: min(viewportW/designW, viewportH/designH).
// A viewport with no area, or a degenerate design size, yields 0.
func ScaleFactor(viewportW, viewportH, designW, designH float64) float64 {
	if designW <= 0 || designH <= 0 {
		return 0
	}
	if viewportW <= 0 || viewportH <= 0 {
		return 0
	}
	return math.Min(viewportW/designW, viewportH/designH)
}

// ToRendered converts a logical value to rendered space.
func ToRendered(logical, scale float64) float64 {
	return logical * scale
}

// PlayerSpeed returns the per-step distance for the given scale:
// max(5, round(10*scale)).
func PlayerSpeed(scale float64) float64 {
	return Speed(scale, BaseSpeed, MinSpeed)
}

// Speed is PlayerSpeed with explicit base and floor.
func Speed(scale, base, min float64) float64 {
	return math.Max(min, math.Round(base*scale))
}

