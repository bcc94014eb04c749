package web

import (
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/game"
)

// wsRenderer implements game.Renderer by turning every call into a message
// for the browser. The browser owns the DOM; the only state kept here is
// the last viewport it reported.
type wsRenderer struct {
	send       func(msgType string, payload any)
	width      float64
	height     float64
	nextHandle game.ObstacleHandle
}

func newWSRenderer(send func(msgType string, payload any)) *wsRenderer {
	return &wsRenderer{send: send}
}

// setViewport records the browser viewport in pixels.
func (r *wsRenderer) setViewport(w, h float64) {
	r.width = max(w, 0)
	r.height = max(h, 0)
}

func (r *wsRenderer) ViewportSize() (w, h float64) {
	return r.width, r.height
}

func (r *wsRenderer) MaterializeObstacle(box core.Rect) game.ObstacleHandle {
	r.nextHandle++
	r.send(TypeObstacleAdd, ObstacleMessage{ID: int(r.nextHandle), X: box.X, Y: box.Y, W: box.W, H: box.H})
	return r.nextHandle
}

func (r *wsRenderer) DestroyObstacle(h game.ObstacleHandle) {
	r.send(TypeObstacleRemove, RemoveMessage{ID: int(h)})
}

func (r *wsRenderer) SetPlayerPosition(p core.Point) {
	r.send(TypePlayer, PointMessage{X: p.X, Y: p.Y})
}

func (r *wsRenderer) SetGoalPosition(p core.Point) {
	r.send(TypeGoal, PointMessage{X: p.X, Y: p.Y})
}

func (r *wsRenderer) SetPlayerVisible(visible bool) {
	r.send(TypeVisibility, VisibilityMessage{Sprite: "player", Visible: visible})
}

func (r *wsRenderer) SetGoalVisible(visible bool) {
	r.send(TypeVisibility, VisibilityMessage{Sprite: "goal", Visible: visible})
}

func (r *wsRenderer) SetSpriteScale(scale float64) {
	r.send(TypeSpriteScale, ScaleMessage{Scale: scale})
}

func (r *wsRenderer) ShowScreen(name game.ScreenName) {
	r.send(TypeScreen, ScreenMessage{Name: string(name), Visible: true})
}

func (r *wsRenderer) HideScreen(name game.ScreenName) {
	r.send(TypeScreen, ScreenMessage{Name: string(name), Visible: false})
}

func (r *wsRenderer) UpdateLevelLabel(n int) {
	r.send(TypeLabel, LabelMessage{Name: "level", Value: n})
}

func (r *wsRenderer) UpdateScoreLabel(n int) {
	r.send(TypeLabel, LabelMessage{Name: "score", Value: n})
}

func (r *wsRenderer) UpdateTimeLabel(seconds int) {
	r.send(TypeLabel, LabelMessage{Name: "time", Value: seconds})
}

func (r *wsRenderer) ShowLevelStats(score, seconds int) {
	r.send(TypeLevelStats, StatsMessage{Score: score, Seconds: seconds})
}

func (r *wsRenderer) ShowGameComplete(score int) {
	r.send(TypeGameComplete, CompleteMessage{Score: score})
}

var _ game.Renderer = (*wsRenderer)(nil)
