package game

import (
	"time"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// ScreenName identifies an overlay screen.
type ScreenName string

const (
	ScreenStart         ScreenName = "start"
	ScreenLevelComplete ScreenName = "levelComplete"
)

// ObstacleHandle identifies a materialized obstacle in the renderer.
type ObstacleHandle int

// Renderer is the display collaborator. All coordinates are in rendered
// space. The session never reads positions back from it.
type Renderer interface {
	MaterializeObstacle(box core.Rect) ObstacleHandle
	DestroyObstacle(h ObstacleHandle)
	SetPlayerPosition(p core.Point)
	SetGoalPosition(p core.Point)
	SetPlayerVisible(visible bool)
	SetGoalVisible(visible bool)
	SetSpriteScale(scale float64)
	ShowScreen(name ScreenName)
	HideScreen(name ScreenName)
	UpdateLevelLabel(n int)
	UpdateScoreLabel(n int)
	UpdateTimeLabel(seconds int)
	ShowLevelStats(score, seconds int)
	ShowGameComplete(score int)
	ViewportSize() (w, h float64)
}

// Scheduler delivers periodic tick events back into the session's event
// loop. Start is called at most once per session.
type Scheduler interface {
	Start(interval time.Duration)
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(interval time.Duration)

// Start calls f(interval).
func (f SchedulerFunc) Start(interval time.Duration) { f(interval) }
